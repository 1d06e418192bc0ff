package coupon

import (
	"regexp"
	"strings"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode     = errs.Define("invalid coupon code format", errs.ErrValidation)
	ErrInvalidDiscountAmount = errs.Define("discount value must be positive", errs.ErrValidation)
	ErrInvalidLimit          = errs.Define("usage limits must be positive", errs.ErrValidation)
	ErrInvalidWindow         = errs.Define("coupon end must be after start", errs.ErrValidation)
	ErrInvalidTitle          = errs.Define("coupon title is required", errs.ErrValidation)
	ErrLimitBelowUsage       = errs.Define("usage limit cannot be lower than the times the coupon was already used", errs.ErrValidation)
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Discount is either a percentage of the subtotal or a flat amount off.
type Discount struct {
	kind        pricing.DiscountType
	value       decimal.Decimal
	maxDiscount *pricing.Money
}

func NewDiscount(kind pricing.DiscountType, value decimal.Decimal, maxDiscount *pricing.Money) (Discount, error) {
	if !kind.IsValid() {
		return Discount{}, pricing.ErrInvalidDiscountType
	}
	if !value.IsPositive() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	if kind == pricing.DiscountPercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, pricing.ErrInvalidDiscountPercent
	}
	if maxDiscount != nil && !maxDiscount.GreaterThan(pricing.Money{}) {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: kind, value: value, maxDiscount: maxDiscount}, nil
}

func (d Discount) Type() pricing.DiscountType  { return d.kind }
func (d Discount) Value() decimal.Decimal      { return d.value }
func (d Discount) MaxDiscount() *pricing.Money { return d.maxDiscount }
func (d Discount) IsPercentage() bool          { return d.kind == pricing.DiscountPercent }

func (d Discount) Terms() pricing.CouponTerms {
	return pricing.CouponTerms{Type: d.kind, Value: d.value, MaxDiscount: d.maxDiscount}
}

// Usage is the number of historical orders that applied a coupon.
type Usage struct {
	PerUser int
	Global  int
}
