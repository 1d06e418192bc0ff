//go:build unit

package password_test

import (
	"strings"
	"testing"

	"food-delivery-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	require.NoError(t, password.ComparePassword(hash, "correct-horse"))
	assert.ErrorIs(t, password.ComparePassword(hash, "wrong-horse"), password.ErrComparisonFailed)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "ok", input: "abcdefgh"},
		{name: "empty", input: "", errIs: password.ErrInvalidPassword},
		{name: "short", input: "abc", errIs: password.ErrTooShort},
		{name: "over bcrypt limit", input: strings.Repeat("a", 73), errIs: password.ErrTooLong},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := password.Validate(tc.input)
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}
