//go:build unit || e2e

package builder

import (
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	CartID   uuid.UUID
	UserID   uuid.UUID
	OutletID uuid.UUID
	Address  order.Address
	Items    []order.Item
	Charges  pricing.Totals
	CouponID *uuid.UUID
	Payment  order.Payment
	Now      time.Time
}

func NewOrderBuilder() *OrderBuilder {
	unit := pricing.MustParseMoney("100")
	addon := order.OptionSnapshot{Name: "Cheese", Price: pricing.MustParseMoney("10")}
	return &OrderBuilder{
		CartID:   uuid.New(),
		UserID:   uuid.New(),
		OutletID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1"),
		Address: order.Address{
			Line1:    "12 MG Road",
			City:     "Bengaluru",
			Pincode:  "560001",
			Location: &order.GeoPoint{Lat: 12.9716, Lng: 77.5946},
		},
		Items: []order.Item{{
			ItemID:    uuid.New(),
			Name:      "Margherita",
			Qty:       2,
			UnitPrice: unit,
			Addons:    []order.OptionSnapshot{addon},
			LineTotal: pricing.MustParseMoney("220"),
		}},
		Charges: pricing.Totals{
			SubTotal:    pricing.MustParseMoney("220"),
			Tax:         pricing.MustParseMoney("11"),
			DeliveryFee: pricing.MustParseMoney("40"),
			GrandTotal:  pricing.MustParseMoney("271"),
		},
		Payment: order.Payment{Method: order.PaymentCOD, Status: order.PaymentPending, Gateway: order.GatewayNone},
		Now:     BaseTime,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithUser(id uuid.UUID) *OrderBuilder {
	b.UserID = id
	return b
}

func (b *OrderBuilder) WithCoupon(id uuid.UUID) *OrderBuilder {
	b.CouponID = &id
	return b
}

// WithCouponDiscount prices the default lines with a coupon worth amount off.
func (b *OrderBuilder) WithCouponDiscount(id uuid.UUID, amount string) *OrderBuilder {
	b.CouponID = &id
	terms := pricing.CouponTerms{Type: pricing.DiscountFlat, Value: pricing.MustParseMoney(amount).Decimal()}
	lines := make([]pricing.Line, 0, len(b.Items))
	for _, it := range b.Items {
		lines = append(lines, it.PricingLine())
	}
	b.Charges = pricing.NewEngine(pricing.DefaultPolicy()).Calculate(lines, &terms)
	return b
}

func (b *OrderBuilder) Params() order.PlaceParams {
	return order.PlaceParams{
		CartID:   b.CartID,
		UserID:   b.UserID,
		OutletID: b.OutletID,
		Address:  b.Address,
		Items:    b.Items,
		Charges:  b.Charges,
		CouponID: b.CouponID,
		Payment:  b.Payment,
	}
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.Place(b.Params(), b.Now)
}

func (b *OrderBuilder) MustBuild() *order.Order {
	o, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return o
}
