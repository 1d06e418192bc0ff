//go:build unit

package user_test

import (
	"strings"
	"testing"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("asha@example.com")
	require.NoError(t, err)

	t.Run("基本成功ケース", func(t *testing.T) {
		actual, err := user.NewUser("  Asha  ", email, nil, "hashed_password", user.RoleCustomer)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Asha", actual.Name())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
		assert.NoError(t, actual.EnsureCanOrder())
	})

	t.Run("名前検証", func(t *testing.T) {
		for _, name := range []string{"", "   ", strings.Repeat("a", 101)} {
			_, err := user.NewUser(name, email, nil, "hash", user.RoleCustomer)
			require.ErrorIs(t, err, user.ErrInvalidName)
		}
	})

	t.Run("無効なロールNG", func(t *testing.T) {
		_, err := user.NewUser("Asha", email, nil, "hash", user.Role("admin"))
		require.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestUser(t *testing.T) {
	t.Run("メールアドレス検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "有効なメールアドレスOK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "空のメールアドレスNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "無効な形式NG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "@なしNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("電話番号検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "国番号付きOK",
				mutate: func(b *builder.UserBuilder) { b.Phone = "+91 98765 43210" },
			},
			{
				name:   "桁数不足NG",
				mutate: func(b *builder.UserBuilder) { b.Phone = "12345" },
				errIs:  user.ErrInvalidPhone,
			},
			{
				name:   "英字混在NG",
				mutate: func(b *builder.UserBuilder) { b.Phone = "98765abcde" },
				errIs:  user.ErrInvalidPhone,
			},
		})
	})

	t.Run("状態検証", func(t *testing.T) {
		blocked := builder.NewUserBuilder().AsBlocked().MustBuild()
		assert.False(t, blocked.IsActive())
		assert.ErrorIs(t, blocked.EnsureCanOrder(), user.ErrUserBlocked)
	})
}

func TestNewEmail(t *testing.T) {
	email, err := user.NewEmail("  Asha@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", email.Value())
}

func TestNewRole(t *testing.T) {
	tests := []struct {
		in    string
		want  user.Role
		errIs error
	}{
		{in: "customer", want: user.RoleCustomer},
		{in: " SUPER_ADMIN ", want: user.RoleSuperAdmin},
		{in: "delivery", want: user.RoleDelivery},
		{in: "admin", errIs: user.ErrInvalidRole},
		{in: "", errIs: user.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := user.NewRole(tt.in)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("スタッフ側ロール", func(t *testing.T) {
		for _, r := range user.AllRoles() {
			want := r == user.RoleSuperAdmin || r == user.RoleManager || r == user.RoleStaff
			assert.Equal(t, want, r.IsStaffSide(), r)
		}
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
