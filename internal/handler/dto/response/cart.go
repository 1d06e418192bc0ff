package response

import (
	"time"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartLineResponse struct {
	ID              uuid.UUID          `json:"id"`
	ItemID          uuid.UUID          `json:"itemId"`
	Name            string             `json:"name"`
	Qty             int                `json:"qty"`
	UnitPrice       pricing.Money      `json:"unitPrice"`
	Variation       *catalog.Variation `json:"variation,omitempty"`
	Addons          []catalog.Addon    `json:"addons"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	LineTotal       pricing.Money      `json:"lineTotal"`
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	OutletID   *uuid.UUID         `json:"outletId,omitempty"`
	Lines      []CartLineResponse `json:"lines"`
	CouponID   *uuid.UUID         `json:"couponId,omitempty"`
	CouponCode *string            `json:"couponCode,omitempty"`
	Totals     pricing.Totals     `json:"totals"`
	Notice     string             `json:"notice,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func FromPricedCart(p *shared.PricedCart) *CartResponse {
	c := p.Cart
	lines := c.Lines()
	res := &CartResponse{
		ID:        c.ID(),
		OutletID:  c.OutletID(),
		Lines:     make([]CartLineResponse, len(lines)),
		CouponID:  c.CouponID(),
		Totals:    c.Totals(),
		Notice:    p.Notice,
		UpdatedAt: c.UpdatedAt(),
	}
	for i, l := range lines {
		addons := l.Addons
		if addons == nil {
			addons = []catalog.Addon{}
		}
		res.Lines[i] = CartLineResponse{
			ID:              l.ID,
			ItemID:          l.ItemID,
			Name:            l.Name,
			Qty:             l.Qty,
			UnitPrice:       l.PriceSnapshot,
			Variation:       l.Variation,
			Addons:          addons,
			DiscountPercent: l.DiscountPercent,
			LineTotal:       l.PricingLine().Total(),
		}
	}
	if p.Coupon != nil {
		code := p.Coupon.Code().String()
		res.CouponCode = &code
	}
	return res
}
