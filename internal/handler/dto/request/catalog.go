package request

import (
	"strings"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariationRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Price     decimal.Decimal `json:"price"`
	MaxAddons int             `json:"maxAddons" binding:"min=0"`
}

type AddonRequest struct {
	Name  string          `json:"name" binding:"required,max=100"`
	Price decimal.Decimal `json:"price"`
	Type  string          `json:"type" binding:"required"`
}

type CreateItemRequest struct {
	OutletID        uuid.UUID          `json:"outletId" binding:"required"`
	Name            string             `json:"name" binding:"required,max=200"`
	Category        string             `json:"category" binding:"required,max=100"`
	Description     string             `json:"description" binding:"max=2000"`
	ImageURL        string             `json:"imageUrl" binding:"omitempty,url"`
	IsVeg           bool               `json:"isVeg"`
	Price           decimal.Decimal    `json:"price"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	Variations      []VariationRequest `json:"variations" binding:"dive"`
	Addons          []AddonRequest     `json:"addons" binding:"dive"`
	IsAvailable     *bool              `json:"isAvailable"`
}

func (r CreateItemRequest) ToInput() commands.CreateItemInput {
	return commands.CreateItemInput{
		OutletID:        r.OutletID,
		Name:            r.Name,
		Category:        r.Category,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		IsVeg:           r.IsVeg,
		Price:           pricing.NewMoney(r.Price),
		DiscountPercent: r.DiscountPercent,
		Variations:      toVariationInputs(r.Variations),
		Addons:          toAddonInputs(r.Addons),
		IsAvailable:     r.IsAvailable,
	}
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// UpdateItemRequest is a PATCH. Sending variations or addons replaces the list.
type UpdateItemRequest struct {
	Name            *string            `json:"name" binding:"omitempty,max=200"`
	Category        *string            `json:"category" binding:"omitempty,max=100"`
	Description     *string            `json:"description" binding:"omitempty,max=2000"`
	ImageURL        *string            `json:"imageUrl" binding:"omitempty,url"`
	IsVeg           *bool              `json:"isVeg"`
	Price           *decimal.Decimal   `json:"price"`
	DiscountPercent *decimal.Decimal   `json:"discountPercent"`
	Variations      []VariationRequest `json:"variations" binding:"omitempty,dive"`
	Addons          []AddonRequest     `json:"addons" binding:"omitempty,dive"`
	IsAvailable     *bool              `json:"isAvailable"`
}

func (r UpdateItemRequest) ToInput() commands.UpdateItemInput {
	return commands.UpdateItemInput{
		Name:            r.Name,
		Category:        r.Category,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		IsVeg:           r.IsVeg,
		Price:           moneyPtr(r.Price),
		DiscountPercent: r.DiscountPercent,
		Variations:      toVariationInputs(r.Variations),
		Addons:          toAddonInputs(r.Addons),
		IsAvailable:     r.IsAvailable,
	}
}

type ItemListQuery struct {
	OutletID  string `form:"outletId" binding:"omitempty,uuid"`
	Category  string `form:"category" binding:"max=100"`
	Veg       bool   `form:"veg"`
	Available bool   `form:"available"`
	Q         string `form:"q" binding:"max=100"`
	PageQuery
}

func (q ItemListQuery) ToFilter() queries.ItemFilter {
	f := queries.ItemFilter{
		Category:      strings.TrimSpace(q.Category),
		VegOnly:       q.Veg,
		AvailableOnly: q.Available,
		Query:         strings.TrimSpace(q.Q),
		PageRequest:   q.ToPage(),
	}
	if id, err := uuid.Parse(q.OutletID); err == nil {
		f.OutletID = &id
	}
	return f
}

// nil stays nil so a PATCH without the field keeps the current list.
func toVariationInputs(in []VariationRequest) []commands.VariationInput {
	if in == nil {
		return nil
	}
	out := make([]commands.VariationInput, len(in))
	for i, v := range in {
		out[i] = commands.VariationInput{Name: v.Name, Price: pricing.NewMoney(v.Price), MaxAddons: v.MaxAddons}
	}
	return out
}

func toAddonInputs(in []AddonRequest) []commands.AddonInput {
	if in == nil {
		return nil
	}
	out := make([]commands.AddonInput, len(in))
	for i, a := range in {
		out[i] = commands.AddonInput{Name: a.Name, Price: pricing.NewMoney(a.Price), Type: strings.ToUpper(a.Type)}
	}
	return out
}
