package shared

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"
)

// PricedCart is a repriced cart. Notice is set when an attached coupon was
// dropped during repricing.
type PricedCart struct {
	Cart   *cart.Cart
	Coupon *coupon.Coupon
	Notice string
}

// Reprice loads the attached coupon, if any, and recalculates the totals.
func Reprice(ctx context.Context, tx Tx, engine *pricing.Engine, c *cart.Cart, now time.Time) (*PricedCart, error) {
	var cp *coupon.Coupon
	if id := c.CouponID(); id != nil {
		found, err := tx.Coupons().FindByID(ctx, *id)
		if err != nil && !errs.IsNotFound(err) {
			return nil, err
		}
		cp = found
	}

	out := &PricedCart{Cart: c}
	if reason := c.Recalculate(engine, cp, now); reason != nil {
		out.Notice = reason.Error()
	} else if c.CouponID() != nil {
		out.Coupon = cp
	}
	return out, nil
}
