package pricing

import (
	"food-delivery-api/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDiscountType    = errs.Define("discount type must be PERCENT or FLAT", errs.ErrValidation)
	ErrInvalidDiscountPercent = errs.Define("percentage discount must be between 0 and 100", errs.ErrValidation)
	ErrInvalidPolicy          = errs.Define("invalid pricing policy", errs.ErrValidation)
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFlat    DiscountType = "FLAT"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountPercent || t == DiscountFlat
}

// Policy holds the store-wide charges applied on top of the items.
type Policy struct {
	TaxRate           decimal.Decimal
	DeliveryFee       Money
	FreeDeliveryAbove Money
}

func DefaultPolicy() Policy {
	return Policy{
		TaxRate:           decimal.RequireFromString("0.05"),
		DeliveryFee:       NewMoneyFromInt(40),
		FreeDeliveryAbove: NewMoneyFromInt(500),
	}
}

func ParsePolicy(taxRate, deliveryFee, freeDeliveryAbove string) (Policy, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Policy{}, errs.Wrapf(ErrInvalidPolicy, "tax rate %q", taxRate)
	}
	fee, err := ParseMoney(deliveryFee)
	if err != nil || fee.IsNegative() {
		return Policy{}, errs.Wrapf(ErrInvalidPolicy, "delivery fee %q", deliveryFee)
	}
	threshold, err := ParseMoney(freeDeliveryAbove)
	if err != nil || threshold.IsNegative() {
		return Policy{}, errs.Wrapf(ErrInvalidPolicy, "free delivery threshold %q", freeDeliveryAbove)
	}
	return Policy{TaxRate: rate, DeliveryFee: fee, FreeDeliveryAbove: threshold}, nil
}

// Line is one priced cart entry.
type Line struct {
	UnitPrice       Money
	Addons          []Money
	Qty             int
	DiscountPercent decimal.Decimal
}

// Total is (unitPrice + addons) * qty.
func (l Line) Total() Money {
	unit := l.UnitPrice
	for _, a := range l.Addons {
		unit = unit.Add(a)
	}
	return unit.Mul(l.Qty)
}

// Discount never exceeds Total.
func (l Line) Discount() Money {
	if !l.DiscountPercent.IsPositive() {
		return Money{}
	}
	total := l.Total()
	return total.Percent(l.DiscountPercent).Min(total)
}

type CouponTerms struct {
	Type        DiscountType
	Value       decimal.Decimal
	MaxDiscount *Money
}

// DiscountFor is capped by MaxDiscount and by subTotal, and never negative.
func (c CouponTerms) DiscountFor(subTotal Money) Money {
	var d Money
	switch c.Type {
	case DiscountPercent:
		d = subTotal.Percent(c.Value)
	case DiscountFlat:
		d = NewMoney(c.Value)
	}
	if c.MaxDiscount != nil {
		d = d.Min(*c.MaxDiscount)
	}
	return d.Min(subTotal).Max(Money{})
}

type Totals struct {
	SubTotal       Money `json:"subTotal"`
	ItemDiscount   Money `json:"itemDiscount"`
	CouponDiscount Money `json:"couponDiscount"`
	Discount       Money `json:"discount"`
	Tax            Money `json:"tax"`
	DeliveryFee    Money `json:"deliveryFee"`
	GrandTotal     Money `json:"grandTotal"`
}

func (t Totals) IsZero() bool {
	return t.SubTotal.IsZero() && t.Discount.IsZero() && t.Tax.IsZero() &&
		t.DeliveryFee.IsZero() && t.GrandTotal.IsZero()
}

type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy { return e.policy }

// Calculate is deterministic. An empty cart prices to all zeros.
func (e *Engine) Calculate(lines []Line, coupon *CouponTerms) Totals {
	if len(lines) == 0 {
		return Totals{}
	}

	var subTotal, itemDiscount Money
	for _, l := range lines {
		lineDiscount := l.Discount()
		itemDiscount = itemDiscount.Add(lineDiscount)
		subTotal = subTotal.Add(l.Total().Sub(lineDiscount))
	}

	var couponDiscount Money
	if coupon != nil {
		couponDiscount = coupon.DiscountFor(subTotal)
	}

	tax := subTotal.Sub(couponDiscount).MulRate(e.policy.TaxRate)

	deliveryFee := e.policy.DeliveryFee
	if subTotal.GreaterThan(e.policy.FreeDeliveryAbove) {
		deliveryFee = Money{}
	}

	return Totals{
		SubTotal:       subTotal,
		ItemDiscount:   itemDiscount,
		CouponDiscount: couponDiscount,
		Discount:       itemDiscount.Add(couponDiscount),
		Tax:            tax,
		DeliveryFee:    deliveryFee,
		GrandTotal:     subTotal.Sub(couponDiscount).Add(tax).Add(deliveryFee),
	}
}
