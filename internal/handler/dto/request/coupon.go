package request

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateCouponRequest struct {
	Code         string           `json:"code" binding:"required,max=50"`
	Title        string           `json:"title" binding:"required,max=200"`
	Description  string           `json:"description" binding:"max=1000"`
	Type         string           `json:"type" binding:"required,oneof=PERCENT FLAT"`
	Value        decimal.Decimal  `json:"value"`
	MaxDiscount  *decimal.Decimal `json:"maxDiscount"`
	MinOrder     decimal.Decimal  `json:"minOrder"`
	StartAt      time.Time        `json:"startAt" binding:"required"`
	EndAt        time.Time        `json:"endAt" binding:"required"`
	Active       *bool            `json:"active"`
	UsageLimit   *int             `json:"usageLimit" binding:"omitempty,min=1"`
	PerUserLimit *int             `json:"perUserLimit" binding:"omitempty,min=1"`
}

func (r CreateCouponRequest) ToInput() commands.CreateCouponInput {
	return commands.CreateCouponInput{
		Code:         r.Code,
		Title:        r.Title,
		Description:  r.Description,
		Type:         pricing.DiscountType(strings.ToUpper(r.Type)),
		Value:        r.Value,
		MaxDiscount:  moneyPtr(r.MaxDiscount),
		MinOrder:     pricing.NewMoney(r.MinOrder),
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Active:       r.Active,
		UsageLimit:   r.UsageLimit,
		PerUserLimit: r.PerUserLimit,
	}
}

type UpdateCouponRequest struct {
	Code        *string          `json:"code" binding:"omitempty,max=50"`
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Type        *string          `json:"type" binding:"omitempty,oneof=PERCENT FLAT"`
	Value       *decimal.Decimal `json:"value"`
	MinOrder    *decimal.Decimal `json:"minOrder"`
	StartAt     *time.Time       `json:"startAt"`
	EndAt       *time.Time       `json:"endAt"`
	Active      *bool            `json:"active"`

	// null clears the cap
	MaxDiscount  patch.Nullable[decimal.Decimal] `json:"maxDiscount" swaggertype:"number"`
	UsageLimit   patch.Nullable[int]             `json:"usageLimit" swaggertype:"integer"`
	PerUserLimit patch.Nullable[int]             `json:"perUserLimit" swaggertype:"integer"`
}

func (r UpdateCouponRequest) ToInput() commands.UpdateCouponInput {
	in := commands.UpdateCouponInput{
		Code:         r.Code,
		Title:        r.Title,
		Description:  r.Description,
		Value:        r.Value,
		MaxDiscount:  patch.Map(r.MaxDiscount, pricing.NewMoney),
		MinOrder:     moneyPtr(r.MinOrder),
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Active:       r.Active,
		UsageLimit:   r.UsageLimit,
		PerUserLimit: r.PerUserLimit,
	}
	if r.Type != nil {
		t := pricing.DiscountType(strings.ToUpper(*r.Type))
		in.Type = &t
	}
	return in
}

type CouponListQuery struct {
	Q string `form:"q" binding:"max=100"`
	PageQuery
}

func moneyPtr(d *decimal.Decimal) *pricing.Money {
	if d == nil {
		return nil
	}
	m := pricing.NewMoney(*d)
	return &m
}
