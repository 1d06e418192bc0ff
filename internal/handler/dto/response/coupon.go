package response

import (
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponResponse struct {
	ID           uuid.UUID            `json:"id"`
	Code         string               `json:"code"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Type         pricing.DiscountType `json:"type"`
	Value        decimal.Decimal      `json:"value"`
	MaxDiscount  *pricing.Money       `json:"maxDiscount,omitempty"`
	MinOrder     pricing.Money        `json:"minOrder"`
	StartAt      time.Time            `json:"startAt"`
	EndAt        time.Time            `json:"endAt"`
	IsActive     bool                 `json:"isActive"`
	UsageLimit   *int                 `json:"usageLimit,omitempty"`
	PerUserLimit *int                 `json:"perUserLimit,omitempty"`
	UsedCount    int                  `json:"usedCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func FromCouponView(v *queries.CouponView) *CouponResponse {
	return copyFlat[CouponResponse](v)
}
