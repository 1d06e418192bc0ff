//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/tests/common/builder"
	sharedmock "food-delivery-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *txFixture) catalogCommands(t *testing.T) (commands.CatalogCommands, *sharedmock.MockCatalogInvalidator) {
	t.Helper()
	cache := sharedmock.NewMockCatalogInvalidator(gomock.NewController(t))
	return commands.NewCatalogCommands(f.uow, cache), cache
}

func TestCatalogCommands_CreateItem(t *testing.T) {
	ctx := context.Background()
	f := newTxFixture(t)
	uc, _ := f.catalogCommands(t)
	outletID := uuid.New()
	f.items.EXPECT().OutletExists(ctx, outletID).Return(false, nil)

	_, err := uc.CreateItem(ctx, commands.CreateItemInput{
		OutletID: outletID,
		Name:     "Masala Dosa",
		Category: "South Indian",
		Price:    pricing.MustParseMoney("90.00"),
	})

	require.ErrorIs(t, err, outlet.ErrOutletNotFound)
}

func TestCatalogCommands_SetAvailability(t *testing.T) {
	ctx := context.Background()
	f := newTxFixture(t)
	uc, cache := f.catalogCommands(t)
	it := builder.NewItemBuilder().MustBuild()

	f.items.EXPECT().FindByID(ctx, it.ID()).Return(it, nil)
	f.items.EXPECT().Update(ctx, it).Return(nil)
	cache.EXPECT().InvalidateItem(ctx, it.ID()).Return(nil)

	got, err := uc.SetAvailability(ctx, it.ID(), false)

	require.NoError(t, err)
	assert.False(t, got.IsAvailable())
}

func TestCatalogCommands_DeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success: deletes and drops the cached reads", func(t *testing.T) {
		f := newTxFixture(t)
		uc, cache := f.catalogCommands(t)
		id := uuid.New()
		gomock.InOrder(
			f.items.EXPECT().Delete(ctx, id).Return(nil),
			cache.EXPECT().InvalidateItem(ctx, id).Return(nil),
		)

		require.NoError(t, uc.DeleteItem(ctx, id))
	})

	t.Run("success: cache failure does not fail the delete", func(t *testing.T) {
		f := newTxFixture(t)
		uc, cache := f.catalogCommands(t)
		id := uuid.New()
		f.items.EXPECT().Delete(ctx, id).Return(nil)
		cache.EXPECT().InvalidateItem(ctx, id).Return(errors.New("redis down"))

		require.NoError(t, uc.DeleteItem(ctx, id))
	})

	t.Run("error: unknown item leaves the cache alone", func(t *testing.T) {
		f := newTxFixture(t)
		uc, _ := f.catalogCommands(t)
		id := uuid.New()
		f.items.EXPECT().Delete(ctx, id).Return(catalog.ErrItemNotFound)

		require.ErrorIs(t, uc.DeleteItem(ctx, id), catalog.ErrItemNotFound)
	})
}
