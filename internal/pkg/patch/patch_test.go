//go:build unit

package patch_test

import (
	"encoding/json"
	"testing"

	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitsBody struct {
	UsageLimit patch.Nullable[int] `json:"usageLimit"`
}

func TestNullable(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		current *int
		want    *int
	}{
		{name: "absent keeps the value", body: `{}`, current: ptr.Of(5), want: ptr.Of(5)},
		{name: "null clears the value", body: `{"usageLimit": null}`, current: ptr.Of(5), want: nil},
		{name: "number replaces the value", body: `{"usageLimit": 7}`, current: ptr.Of(5), want: ptr.Of(7)},
		{name: "number sets an empty value", body: `{"usageLimit": 3}`, current: nil, want: ptr.Of(3)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b limitsBody
			require.NoError(t, json.Unmarshal([]byte(tc.body), &b))

			dst := tc.current
			b.UsageLimit.Apply(&dst)
			assert.Equal(t, tc.want, dst)
		})
	}

	t.Run("wrong type is a decode error", func(t *testing.T) {
		var b limitsBody
		assert.Error(t, json.Unmarshal([]byte(`{"usageLimit": "ten"}`), &b))
	})

	t.Run("Map keeps the null state", func(t *testing.T) {
		double := func(n int) int { return n * 2 }
		assert.Equal(t, patch.Null[int](), patch.Map(patch.Null[int](), double))
		assert.Equal(t, patch.Nullable[int]{}, patch.Map(patch.Nullable[int]{}, double))
		assert.Equal(t, 8, *patch.Map(patch.Value(4), double).Value)
	})
}
