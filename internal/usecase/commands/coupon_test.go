//go:build unit

package commands_test

import (
	"context"
	"testing"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponCommands_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success: absent caps are kept", func(t *testing.T) {
		f := newTxFixture(t)
		cp := builder.NewCouponBuilder().WithPercent("10", ptr.Of("50")).WithLimits(ptr.Of(100), ptr.Of(1)).MustBuild()
		f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil)
		f.coupons.EXPECT().Update(ctx, cp).Return(nil)

		got, err := commands.NewCouponCommands(f.uow).Update(ctx, cp.ID(), commands.UpdateCouponInput{Title: ptr.Of("Ten off")})

		require.NoError(t, err)
		assert.Equal(t, "Ten off", got.Title())
		assert.Equal(t, 100, *got.UsageLimit())
		assert.Equal(t, 1, *got.PerUserLimit())
		assert.Equal(t, "50.00", got.Discount().MaxDiscount().String())
	})

	t.Run("success: null clears the caps back to unlimited", func(t *testing.T) {
		f := newTxFixture(t)
		cp := builder.NewCouponBuilder().WithPercent("10", ptr.Of("50")).WithLimits(ptr.Of(100), ptr.Of(1)).MustBuild()
		f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil)
		f.coupons.EXPECT().Update(ctx, cp).Return(nil)

		got, err := commands.NewCouponCommands(f.uow).Update(ctx, cp.ID(), commands.UpdateCouponInput{
			MaxDiscount:  patch.Null[pricing.Money](),
			UsageLimit:   patch.Null[int](),
			PerUserLimit: patch.Null[int](),
		})

		require.NoError(t, err)
		assert.Nil(t, got.UsageLimit())
		assert.Nil(t, got.PerUserLimit())
		assert.Nil(t, got.Discount().MaxDiscount())
	})

	t.Run("error: limit below the redemptions so far is rejected before saving", func(t *testing.T) {
		f := newTxFixture(t)
		cp := builder.NewCouponBuilder().MustBuildUsed(5)
		f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil)

		_, err := commands.NewCouponCommands(f.uow).Update(ctx, cp.ID(), commands.UpdateCouponInput{UsageLimit: patch.Value(2)})

		require.ErrorIs(t, err, coupon.ErrLimitBelowUsage)
	})
}
