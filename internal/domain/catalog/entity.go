package catalog

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound        = errs.Define("item not found", errs.ErrNotFound)
	ErrItemUnavailable     = errs.Define("item is not available", errs.ErrConflict)
	ErrUnknownVariation    = errs.Define("unknown variation for item", errs.ErrValidation)
	ErrUnknownAddon        = errs.Define("unknown addon for item", errs.ErrValidation)
	ErrTooManyAddons       = errs.Define("too many addons for the chosen variation", errs.ErrValidation)
	ErrInvalidItemName     = errs.Define("item name is required", errs.ErrValidation)
	ErrInvalidItemPrice    = errs.Define("item price must not be negative", errs.ErrValidation)
	ErrInvalidItemDiscount = errs.Define("item discount must be between 0 and 100", errs.ErrValidation)
	ErrDuplicateSlug       = errs.Define("an item with this slug already exists", errs.ErrConflict)
)

type Item struct {
	id              uuid.UUID
	outletID        uuid.UUID
	name            string
	slug            string
	category        string
	description     string
	imageURL        string
	isVeg           bool
	price           pricing.Money
	discountPercent decimal.Decimal
	variations      []Variation
	addons          []Addon
	isAvailable     bool
	ratingAvg       decimal.Decimal
	ratingCount     int
	createdAt       time.Time
	updatedAt       time.Time
}

type Details struct {
	Name            string
	Category        string
	Description     string
	ImageURL        string
	IsVeg           bool
	Price           pricing.Money
	DiscountPercent decimal.Decimal
	Variations      []Variation
	Addons          []Addon
	IsAvailable     bool
}

func NewItem(outletID uuid.UUID, d Details) (*Item, error) {
	it := &Item{id: uuid.New(), outletID: outletID}
	if err := it.apply(d); err != nil {
		return nil, err
	}
	return it, nil
}

func ReconstructItem(
	id, outletID uuid.UUID,
	slug string,
	d Details,
	ratingAvg decimal.Decimal,
	ratingCount int,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:              id,
		outletID:        outletID,
		name:            d.Name,
		slug:            slug,
		category:        d.Category,
		description:     d.Description,
		imageURL:        d.ImageURL,
		isVeg:           d.IsVeg,
		price:           d.Price,
		discountPercent: d.DiscountPercent,
		variations:      d.Variations,
		addons:          d.Addons,
		isAvailable:     d.IsAvailable,
		ratingAvg:       ratingAvg,
		ratingCount:     ratingCount,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (it *Item) Update(d Details) error {
	next := *it
	if err := next.apply(d); err != nil {
		return err
	}
	*it = next
	return nil
}

func (it *Item) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrInvalidItemName
	}
	if d.Price.IsNegative() {
		return ErrInvalidItemPrice
	}
	if d.DiscountPercent.IsNegative() || d.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidItemDiscount
	}
	it.name = name
	it.slug = Slugify(name)
	it.category = strings.TrimSpace(d.Category)
	it.description = strings.TrimSpace(d.Description)
	it.imageURL = strings.TrimSpace(d.ImageURL)
	it.isVeg = d.IsVeg
	it.price = d.Price
	it.discountPercent = d.DiscountPercent
	it.variations = d.Variations
	it.addons = d.Addons
	it.isAvailable = d.IsAvailable
	return nil
}

func (it *Item) Details() Details {
	return Details{
		Name:            it.name,
		Category:        it.category,
		Description:     it.description,
		ImageURL:        it.imageURL,
		IsVeg:           it.isVeg,
		Price:           it.price,
		DiscountPercent: it.discountPercent,
		Variations:      append([]Variation(nil), it.variations...),
		Addons:          append([]Addon(nil), it.addons...),
		IsAvailable:     it.isAvailable,
	}
}

// Selection is what a customer picked for one cart line, resolved against the catalog.
type Selection struct {
	UnitPrice pricing.Money
	Variation *Variation
	Addons    []Addon
}

// Resolve prices a selection. The unit price is the variation's price when one
// is chosen, otherwise the item's base price. Addons are priced from the item.
func (it *Item) Resolve(variationName string, addonNames []string) (Selection, error) {
	if !it.isAvailable {
		return Selection{}, ErrItemUnavailable
	}

	sel := Selection{UnitPrice: it.price}
	maxAddons := -1
	if variationName = strings.TrimSpace(variationName); variationName != "" {
		v, ok := it.findVariation(variationName)
		if !ok {
			return Selection{}, ErrUnknownVariation
		}
		sel.Variation = &v
		sel.UnitPrice = v.Price
		if v.MaxAddons > 0 {
			maxAddons = v.MaxAddons
		}
	}

	for _, name := range addonNames {
		a, ok := it.findAddon(strings.TrimSpace(name))
		if !ok {
			return Selection{}, ErrUnknownAddon
		}
		sel.Addons = append(sel.Addons, a)
	}
	if maxAddons >= 0 && len(sel.Addons) > maxAddons {
		return Selection{}, ErrTooManyAddons
	}
	return sel, nil
}

func (it *Item) findVariation(name string) (Variation, bool) {
	for _, v := range it.variations {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variation{}, false
}

func (it *Item) findAddon(name string) (Addon, bool) {
	for _, a := range it.addons {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Addon{}, false
}

func (it *Item) ID() uuid.UUID                    { return it.id }
func (it *Item) OutletID() uuid.UUID              { return it.outletID }
func (it *Item) Name() string                     { return it.name }
func (it *Item) Slug() string                     { return it.slug }
func (it *Item) Category() string                 { return it.category }
func (it *Item) Description() string              { return it.description }
func (it *Item) ImageURL() string                 { return it.imageURL }
func (it *Item) IsVeg() bool                      { return it.isVeg }
func (it *Item) Price() pricing.Money             { return it.price }
func (it *Item) DiscountPercent() decimal.Decimal { return it.discountPercent }
func (it *Item) Variations() []Variation          { return it.variations }
func (it *Item) Addons() []Addon                  { return it.addons }
func (it *Item) IsAvailable() bool                { return it.isAvailable }
func (it *Item) RatingAvg() decimal.Decimal       { return it.ratingAvg }
func (it *Item) RatingCount() int                 { return it.ratingCount }
func (it *Item) CreatedAt() time.Time             { return it.createdAt }
func (it *Item) UpdatedAt() time.Time             { return it.updatedAt }
