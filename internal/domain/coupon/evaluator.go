package coupon

import (
	"time"

	"food-delivery-api/internal/domain/pricing"
)

// CheckAttachable runs the checks that do not depend on order history.
// A nil coupon is treated as inactive.
func CheckAttachable(c *Coupon, subTotal pricing.Money, now time.Time) error {
	if c == nil || !c.active {
		return ErrNotActive
	}
	if now.Before(c.startAt) {
		return ErrNotYetActive
	}
	if now.After(c.endAt) {
		return ErrExpired
	}
	if subTotal.LessThan(c.minOrder) {
		return ErrMinOrderNotMet
	}
	return nil
}

// Evaluate returns the discount the coupon grants on subTotal, or the first
// rejection. It never consumes a usage slot.
func Evaluate(c *Coupon, subTotal pricing.Money, usage Usage, now time.Time) (pricing.Money, error) {
	if err := CheckAttachable(c, subTotal, now); err != nil {
		return pricing.Money{}, err
	}
	if c.perUserLimit != nil && usage.PerUser >= *c.perUserLimit {
		return pricing.Money{}, ErrPerUserLimitReached
	}
	if c.usageLimit != nil && usage.Global >= *c.usageLimit {
		return pricing.Money{}, ErrUsageLimitReached
	}
	return c.discount.Terms().DiscountFor(subTotal), nil
}
