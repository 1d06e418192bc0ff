//go:build unit

package cache

import (
	"context"
	"testing"

	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := NewCatalogCache(nil, 0)
	id := uuid.New()

	assert.False(t, c.Enabled())

	c.StoreItem(ctx, &queries.ItemView{ID: id})
	_, ok := c.Item(ctx, id)
	assert.False(t, ok, "disabled cache never hits")

	f := queries.ItemFilter{PageRequest: queries.PageRequest{Page: 1, Limit: 20}}
	c.StoreList(ctx, f, &queries.Page[*queries.ItemView]{})
	_, ok = c.List(ctx, f)
	assert.False(t, ok)

	require.NoError(t, c.InvalidateItem(ctx, id))
}

func TestListKey(t *testing.T) {
	outlet := uuid.MustParse("7b0f5a7e-3f55-4c1e-9d7c-2f2f8e0f6a11")
	base := queries.ItemFilter{
		OutletID:    &outlet,
		Category:    "pizza",
		VegOnly:     true,
		PageRequest: queries.PageRequest{Page: 2, Limit: 10},
	}

	t.Run("同じフィルタは同じキー", func(t *testing.T) {
		assert.Equal(t, listKey(3, base), listKey(3, base))
	})

	t.Run("世代が変わればキーも変わる", func(t *testing.T) {
		assert.NotEqual(t, listKey(3, base), listKey(4, base))
	})

	t.Run("ページ違いは別キー", func(t *testing.T) {
		other := base
		other.Page = 3
		assert.NotEqual(t, listKey(3, base), listKey(3, other))
	})

	t.Run("出力形式", func(t *testing.T) {
		assert.Equal(t,
			"catalog:list:3:available=false&category=pizza&limit=10&outlet=7b0f5a7e-3f55-4c1e-9d7c-2f2f8e0f6a11&page=2&q=&veg=true",
			listKey(3, base))
	})
}
