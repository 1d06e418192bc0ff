//go:build unit

package pricing_test

import (
	"testing"

	"food-delivery-api/internal/domain/pricing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

type lineInput struct {
	UnitCents  int64
	AddonCents []int64
	Qty        int
	Percent    int
}

func genLine() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(0, 100_000),
		gen.SliceOfN(3, gen.Int64Range(0, 5_000)),
		gen.IntRange(1, 20),
		gen.IntRange(0, 100),
	).Map(func(v []any) lineInput {
		return lineInput{
			UnitCents:  v[0].(int64),
			AddonCents: v[1].([]int64),
			Qty:        v[2].(int),
			Percent:    v[3].(int),
		}
	})
}

func toLines(in []lineInput) []pricing.Line {
	lines := make([]pricing.Line, 0, len(in))
	for _, l := range in {
		addons := make([]pricing.Money, 0, len(l.AddonCents))
		for _, a := range l.AddonCents {
			addons = append(addons, pricing.NewMoneyFromCents(a))
		}
		lines = append(lines, pricing.Line{
			UnitPrice:       pricing.NewMoneyFromCents(l.UnitCents),
			Addons:          addons,
			Qty:             l.Qty,
			DiscountPercent: decimal.NewFromInt(int64(l.Percent)),
		})
	}
	return lines
}

func TestEngine_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	engine := pricing.NewEngine(pricing.DefaultPolicy())

	properties.Property("line discount never exceeds the line total", prop.ForAll(
		func(in lineInput) bool {
			l := toLines([]lineInput{in})[0]
			return !l.Discount().GreaterThan(l.Total()) && !l.Discount().IsNegative()
		},
		genLine(),
	))

	properties.Property("grandTotal = subTotal - coupon + tax + deliveryFee", prop.ForAll(
		func(in []lineInput, flatCents int64) bool {
			coupon := &pricing.CouponTerms{Type: pricing.DiscountFlat, Value: pricing.NewMoneyFromCents(flatCents).Decimal()}
			tot := engine.Calculate(toLines(in), coupon)
			want := tot.SubTotal.Sub(tot.CouponDiscount).Add(tot.Tax).Add(tot.DeliveryFee)
			return want.Equal(tot.GrandTotal)
		},
		gen.SliceOf(genLine()),
		gen.Int64Range(0, 50_000),
	))

	properties.Property("coupon discount bounded by subTotal and maxDiscount", prop.ForAll(
		func(in []lineInput, percent int, maxCents int64) bool {
			maxDiscount := pricing.NewMoneyFromCents(maxCents)
			coupon := &pricing.CouponTerms{
				Type:        pricing.DiscountPercent,
				Value:       decimal.NewFromInt(int64(percent)),
				MaxDiscount: &maxDiscount,
			}
			tot := engine.Calculate(toLines(in), coupon)
			return !tot.CouponDiscount.GreaterThan(tot.SubTotal) &&
				!tot.CouponDiscount.GreaterThan(maxDiscount) &&
				!tot.CouponDiscount.IsNegative()
		},
		gen.SliceOf(genLine()),
		gen.IntRange(0, 100),
		gen.Int64Range(0, 100_000),
	))

	properties.Property("every output has at most two decimals", prop.ForAll(
		func(in []lineInput) bool {
			tot := engine.Calculate(toLines(in), nil)
			for _, m := range []pricing.Money{tot.SubTotal, tot.Tax, tot.DeliveryFee, tot.GrandTotal, tot.Discount} {
				if m.Decimal().Exponent() < -2 && !m.Decimal().Equal(m.Decimal().Round(2)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genLine()),
	))

	properties.TestingRun(t)
}
