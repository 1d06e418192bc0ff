//go:build unit || e2e

package builder

import (
	"time"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixed reference time for deterministic window checks.
var BaseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type CouponBuilder struct {
	Code         string
	Title        string
	Description  string
	Type         pricing.DiscountType
	Value        string
	MaxDiscount  *string
	MinOrder     string
	StartAt      time.Time
	EndAt        time.Time
	Active       bool
	UsageLimit   *int
	PerUserLimit *int
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		Code:     "SAVE10",
		Title:    "10% off",
		Type:     pricing.DiscountPercent,
		Value:    "10",
		MinOrder: "0",
		StartAt:  BaseTime.Add(-24 * time.Hour),
		EndAt:    BaseTime.Add(24 * time.Hour),
		Active:   true,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) Params() (coupon.Params, error) {
	var maxDiscount *pricing.Money
	if b.MaxDiscount != nil {
		m, err := pricing.ParseMoney(*b.MaxDiscount)
		if err != nil {
			return coupon.Params{}, err
		}
		maxDiscount = &m
	}
	value, err := decimal.NewFromString(b.Value)
	if err != nil {
		return coupon.Params{}, err
	}
	discount, err := coupon.NewDiscount(b.Type, value, maxDiscount)
	if err != nil {
		return coupon.Params{}, err
	}
	minOrder, err := pricing.ParseMoney(b.MinOrder)
	if err != nil {
		return coupon.Params{}, err
	}
	return coupon.Params{
		Code:         b.Code,
		Title:        b.Title,
		Description:  b.Description,
		Discount:     discount,
		MinOrder:     minOrder,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Active:       b.Active,
		UsageLimit:   b.UsageLimit,
		PerUserLimit: b.PerUserLimit,
	}, nil
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	p, err := b.Params()
	if err != nil {
		return nil, err
	}
	return coupon.NewCoupon(p)
}

func (b *CouponBuilder) MustBuild() *coupon.Coupon {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}

// MustBuildUsed reconstructs the coupon as if it had already been redeemed n times.
func (b *CouponBuilder) MustBuildUsed(n int) *coupon.Coupon {
	p, err := b.Params()
	if err != nil {
		panic(err)
	}
	return coupon.ReconstructCoupon(uuid.New(), p, n, BaseTime, BaseTime)
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithFlat(value string) *CouponBuilder {
	b.Type = pricing.DiscountFlat
	b.Value = value
	return b
}

func (b *CouponBuilder) WithPercent(value string, maxDiscount *string) *CouponBuilder {
	b.Type = pricing.DiscountPercent
	b.Value = value
	b.MaxDiscount = maxDiscount
	return b
}

func (b *CouponBuilder) WithMinOrder(min string) *CouponBuilder {
	b.MinOrder = min
	return b
}

func (b *CouponBuilder) WithWindow(start, end time.Time) *CouponBuilder {
	b.StartAt = start
	b.EndAt = end
	return b
}

func (b *CouponBuilder) WithLimits(global, perUser *int) *CouponBuilder {
	b.UsageLimit = global
	b.PerUserLimit = perUser
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.Active = false
	return b
}
