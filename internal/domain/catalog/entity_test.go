//go:build unit

package catalog_test

import (
	"testing"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Resolve(t *testing.T) {
	item := builder.NewItemBuilder().
		WithVariation("Large", "120", 2).
		WithAddon("Cheese", "10", catalog.AddonTopping).
		WithAddon("Olives", "15", catalog.AddonTopping).
		WithAddon("Jalapeno", "5", catalog.AddonSpice).
		MustBuild()

	testCases := []struct {
		name      string
		variation string
		addons    []string
		wantUnit  string
		wantAdds  int
		errIs     error
	}{
		{name: "基本価格", wantUnit: "100.00"},
		{name: "バリエーション価格", variation: "large", wantUnit: "120.00"},
		{name: "addon付き", variation: "Large", addons: []string{"Cheese", "olives"}, wantUnit: "120.00", wantAdds: 2},
		{name: "未知のバリエーションNG", variation: "Huge", errIs: catalog.ErrUnknownVariation},
		{name: "未知のaddonNG", addons: []string{"Pineapple"}, errIs: catalog.ErrUnknownAddon},
		{
			name:      "addon上限超過NG",
			variation: "Large",
			addons:    []string{"Cheese", "Olives", "Jalapeno"},
			errIs:     catalog.ErrTooManyAddons,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := item.Resolve(tc.variation, tc.addons)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantUnit, sel.UnitPrice.String())
			assert.Len(t, sel.Addons, tc.wantAdds)
		})
	}

	t.Run("販売停止中はNG", func(t *testing.T) {
		off := builder.NewItemBuilder().AsUnavailable().MustBuild()
		_, err := off.Resolve("", nil)
		require.ErrorIs(t, err, catalog.ErrItemUnavailable)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("slugは名前から生成", func(t *testing.T) {
		item := builder.NewItemBuilder().With(func(b *builder.ItemBuilder) { b.Name = "Paneer Tikka  Pizza!" }).MustBuild()
		assert.Equal(t, "paneer-tikka-pizza", item.Slug())
	})

	t.Run("割引率が範囲外ならNG", func(t *testing.T) {
		_, err := builder.NewItemBuilder().WithDiscount("120").BuildDomain()
		require.ErrorIs(t, err, catalog.ErrInvalidItemDiscount)
	})

	t.Run("負の価格NG", func(t *testing.T) {
		_, err := builder.NewItemBuilder().With(func(b *builder.ItemBuilder) { b.Price = "-1" }).BuildDomain()
		require.ErrorIs(t, err, catalog.ErrInvalidItemPrice)
	})

	t.Run("不正なaddon種別NG", func(t *testing.T) {
		_, err := catalog.NewAddon("Cheese", pricing.MustParseMoney("10"), "SAUCE")
		require.ErrorIs(t, err, catalog.ErrInvalidAddonType)
	})
}
