//go:build unit

package pricing_test

import (
	"testing"

	"food-delivery-api/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) pricing.Money { return pricing.MustParseMoney(s) }

func ptrMoney(s string) *pricing.Money {
	m := money(s)
	return &m
}

func assertMoney(t *testing.T, want string, got pricing.Money, field string) {
	t.Helper()
	assert.Equal(t, want, got.String(), field)
}

func TestEngine_Calculate(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultPolicy())

	baseLine := pricing.Line{
		UnitPrice: money("100"),
		Addons:    []pricing.Money{money("10")},
		Qty:       2,
	}

	t.Run("空のカートは全てゼロ", func(t *testing.T) {
		totals := engine.Calculate(nil, &pricing.CouponTerms{Type: pricing.DiscountFlat, Value: decimal.NewFromInt(50)})
		assert.True(t, totals.IsZero())
		assertMoney(t, "0.00", totals.DeliveryFee, "deliveryFee")
		assertMoney(t, "0.00", totals.GrandTotal, "grandTotal")
	})

	t.Run("クーポンなし 220 -> 271.00", func(t *testing.T) {
		totals := engine.Calculate([]pricing.Line{baseLine}, nil)
		assertMoney(t, "220.00", totals.SubTotal, "subTotal")
		assertMoney(t, "0.00", totals.Discount, "discount")
		assertMoney(t, "11.00", totals.Tax, "tax")
		assertMoney(t, "40.00", totals.DeliveryFee, "deliveryFee")
		assertMoney(t, "271.00", totals.GrandTotal, "grandTotal")
	})

	t.Run("PERCENTクーポン上限適用 220 -> 255.25", func(t *testing.T) {
		coupon := &pricing.CouponTerms{
			Type:        pricing.DiscountPercent,
			Value:       decimal.NewFromInt(10),
			MaxDiscount: ptrMoney("15"),
		}
		totals := engine.Calculate([]pricing.Line{baseLine}, coupon)
		assertMoney(t, "220.00", totals.SubTotal, "subTotal")
		assertMoney(t, "15.00", totals.CouponDiscount, "couponDiscount")
		assertMoney(t, "15.00", totals.Discount, "discount")
		assertMoney(t, "10.25", totals.Tax, "tax")
		assertMoney(t, "40.00", totals.DeliveryFee, "deliveryFee")
		assertMoney(t, "255.25", totals.GrandTotal, "grandTotal")
	})

	t.Run("商品割引はsubTotalから差し引かれる", func(t *testing.T) {
		line := baseLine
		line.DiscountPercent = decimal.NewFromInt(10)
		totals := engine.Calculate([]pricing.Line{line}, nil)
		assertMoney(t, "22.00", totals.ItemDiscount, "itemDiscount")
		assertMoney(t, "198.00", totals.SubTotal, "subTotal")
		assertMoney(t, "22.00", totals.Discount, "discount")
		assertMoney(t, "9.90", totals.Tax, "tax")
		assertMoney(t, "247.90", totals.GrandTotal, "grandTotal")
	})

	t.Run("500超で配送料無料", func(t *testing.T) {
		line := pricing.Line{UnitPrice: money("250.50"), Qty: 2}
		totals := engine.Calculate([]pricing.Line{line}, nil)
		assertMoney(t, "501.00", totals.SubTotal, "subTotal")
		assertMoney(t, "0.00", totals.DeliveryFee, "deliveryFee")
		assertMoney(t, "25.05", totals.Tax, "tax")
		assertMoney(t, "526.05", totals.GrandTotal, "grandTotal")
	})

	t.Run("ちょうど500は配送料あり", func(t *testing.T) {
		line := pricing.Line{UnitPrice: money("500"), Qty: 1}
		totals := engine.Calculate([]pricing.Line{line}, nil)
		assertMoney(t, "40.00", totals.DeliveryFee, "deliveryFee")
	})

	t.Run("FLATクーポンはsubTotalを超えない", func(t *testing.T) {
		line := pricing.Line{UnitPrice: money("30"), Qty: 1}
		coupon := &pricing.CouponTerms{Type: pricing.DiscountFlat, Value: decimal.NewFromInt(100)}
		totals := engine.Calculate([]pricing.Line{line}, coupon)
		assertMoney(t, "30.00", totals.CouponDiscount, "couponDiscount")
		assertMoney(t, "0.00", totals.Tax, "tax")
		assertMoney(t, "40.00", totals.GrandTotal, "grandTotal")
	})

	t.Run("小数の税額は2桁に丸める", func(t *testing.T) {
		line := pricing.Line{UnitPrice: money("33.33"), Qty: 1}
		totals := engine.Calculate([]pricing.Line{line}, nil)
		// 33.33 * 0.05 = 1.6665
		assertMoney(t, "1.67", totals.Tax, "tax")
		assertMoney(t, "75.00", totals.GrandTotal, "grandTotal")
	})
}

func TestParsePolicy(t *testing.T) {
	testCases := []struct {
		name                 string
		rate, fee, threshold string
		errIs                error
	}{
		{name: "defaults", rate: "0.05", fee: "40", threshold: "500"},
		{name: "bad rate", rate: "abc", fee: "40", threshold: "500", errIs: pricing.ErrInvalidPolicy},
		{name: "rate above one", rate: "1.5", fee: "40", threshold: "500", errIs: pricing.ErrInvalidPolicy},
		{name: "negative fee", rate: "0.05", fee: "-1", threshold: "500", errIs: pricing.ErrInvalidPolicy},
		{name: "bad threshold", rate: "0.05", fee: "40", threshold: "x", errIs: pricing.ErrInvalidPolicy},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pricing.ParsePolicy(tc.rate, tc.fee, tc.threshold)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, pricing.DefaultPolicy().DeliveryFee.String(), p.DeliveryFee.String())
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	b, err := money("10.5").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "10.50", string(b))

	var m pricing.Money
	require.NoError(t, m.UnmarshalJSON([]byte(`"12.345"`)))
	assert.Equal(t, "12.35", m.String())
	assert.Equal(t, int64(1235), m.Cents())
	assert.True(t, pricing.NewMoneyFromCents(1235).Equal(m))
}
