//go:build unit || e2e

package builder

import (
	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemBuilder struct {
	OutletID    uuid.UUID
	Name        string
	Category    string
	Price       string
	Discount    string
	IsVeg       bool
	IsAvailable bool
	Variations  []catalog.Variation
	Addons      []catalog.Addon
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		OutletID:    uuid.MustParse("00000000-0000-0000-0000-0000000000a1"),
		Name:        "Margherita",
		Category:    "pizza",
		Price:       "100",
		Discount:    "0",
		IsVeg:       true,
		IsAvailable: true,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) WithVariation(name, price string, maxAddons int) *ItemBuilder {
	b.Variations = append(b.Variations, catalog.Variation{Name: name, Price: pricing.MustParseMoney(price), MaxAddons: maxAddons})
	return b
}

func (b *ItemBuilder) WithAddon(name, price string, kind catalog.AddonType) *ItemBuilder {
	b.Addons = append(b.Addons, catalog.Addon{Name: name, Price: pricing.MustParseMoney(price), Type: kind})
	return b
}

func (b *ItemBuilder) WithDiscount(percent string) *ItemBuilder {
	b.Discount = percent
	return b
}

func (b *ItemBuilder) WithOutlet(id uuid.UUID) *ItemBuilder {
	b.OutletID = id
	return b
}

func (b *ItemBuilder) AsUnavailable() *ItemBuilder {
	b.IsAvailable = false
	return b
}

func (b *ItemBuilder) Details() (catalog.Details, error) {
	price, err := pricing.ParseMoney(b.Price)
	if err != nil {
		return catalog.Details{}, err
	}
	discount, err := decimal.NewFromString(b.Discount)
	if err != nil {
		return catalog.Details{}, err
	}
	return catalog.Details{
		Name:            b.Name,
		Category:        b.Category,
		IsVeg:           b.IsVeg,
		Price:           price,
		DiscountPercent: discount,
		Variations:      b.Variations,
		Addons:          b.Addons,
		IsAvailable:     b.IsAvailable,
	}, nil
}

func (b *ItemBuilder) BuildDomain() (*catalog.Item, error) {
	d, err := b.Details()
	if err != nil {
		return nil, err
	}
	return catalog.NewItem(b.OutletID, d)
}

func (b *ItemBuilder) MustBuild() *catalog.Item {
	it, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return it
}
