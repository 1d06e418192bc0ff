//go:build unit

package address_test

import (
	"strings"
	"testing"
	"time"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func home() address.Details {
	return address.Details{
		Label:        "home",
		Line1:        " 12 MG Road ",
		City:         "Bengaluru",
		Pincode:      "560001",
		Location:     &order.GeoPoint{Lat: 12.97, Lng: 77.59},
		ContactPhone: "+91 98765 43210",
		Instructions: "Ring twice",
	}
}

func TestNewAddress(t *testing.T) {
	userID := uuid.New()

	t.Run("基本成功ケース", func(t *testing.T) {
		a, err := address.NewAddress(userID, home(), now)

		require.NoError(t, err)
		assert.Equal(t, userID, a.UserID())
		assert.Equal(t, address.LabelHome, a.Details().Label)
		assert.Equal(t, "12 MG Road", a.Details().Line1)
		assert.Equal(t, "+919876543210", a.Details().ContactPhone)
		assert.False(t, a.IsDefault())
	})

	t.Run("ラベル省略はOther", func(t *testing.T) {
		d := home()
		d.Label = ""
		a, err := address.NewAddress(userID, d, now)
		require.NoError(t, err)
		assert.Equal(t, address.LabelOther, a.Details().Label)
	})

	testCases := []struct {
		name   string
		mutate func(*address.Details)
		errIs  error
	}{
		{name: "未知のラベルNG", mutate: func(d *address.Details) { d.Label = "Office" }, errIs: address.ErrInvalidLabel},
		{name: "住所1行目なしNG", mutate: func(d *address.Details) { d.Line1 = "  " }, errIs: order.ErrInvalidAddress},
		{name: "郵便番号なしNG", mutate: func(d *address.Details) { d.Pincode = "" }, errIs: order.ErrInvalidAddress},
		{name: "座標範囲外NG", mutate: func(d *address.Details) { d.Location = &order.GeoPoint{Lat: 91} }, errIs: order.ErrInvalidLocation},
		{name: "連絡先電話番号NG", mutate: func(d *address.Details) { d.ContactPhone = "123" }, errIs: user.ErrInvalidPhone},
		{name: "配達メモが長すぎNG", mutate: func(d *address.Details) { d.Instructions = strings.Repeat("x", 501) }, errIs: address.ErrFieldTooLong},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := home()
			tc.mutate(&d)
			_, err := address.NewAddress(userID, d, now)
			require.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestAddress_Snapshot(t *testing.T) {
	a, err := address.NewAddress(uuid.New(), home(), now)
	require.NoError(t, err)

	snap := a.Snapshot()

	require.NoError(t, snap.Validate())
	assert.Equal(t, "Home", snap.Label)
	assert.Equal(t, "12 MG Road", snap.Line1)
	assert.Equal(t, "Ring twice", snap.Instructions)
	require.NotNil(t, snap.Location)
	assert.Equal(t, 77.59, snap.Location.Lng)
}

func TestAddress_EnsureOwnedBy(t *testing.T) {
	owner := uuid.New()
	a, err := address.NewAddress(owner, home(), now)
	require.NoError(t, err)

	assert.NoError(t, a.EnsureOwnedBy(owner))
	err = a.EnsureOwnedBy(uuid.New())
	require.ErrorIs(t, err, address.ErrAddressNotFound)
	assert.True(t, errs.IsNotFound(err))
}

func TestAddress_MarkDefault(t *testing.T) {
	a, err := address.NewAddress(uuid.New(), home(), now)
	require.NoError(t, err)

	a.MarkDefault(now.Add(time.Minute))
	a.MarkDefault(now.Add(time.Hour))

	assert.True(t, a.IsDefault())
	assert.Equal(t, now.Add(time.Minute), a.UpdatedAt())
}
