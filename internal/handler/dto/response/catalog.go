package response

import (
	"time"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID              uuid.UUID           `json:"id"`
	OutletID        uuid.UUID           `json:"outletId"`
	OutletName      string              `json:"outletName"`
	Name            string              `json:"name"`
	Slug            string              `json:"slug"`
	Category        string              `json:"category"`
	Description     string              `json:"description"`
	ImageURL        string              `json:"imageUrl"`
	IsVeg           bool                `json:"isVeg"`
	Price           pricing.Money       `json:"price"`
	DiscountPercent decimal.Decimal     `json:"discountPercent"`
	Variations      []catalog.Variation `json:"variations"`
	Addons          []catalog.Addon     `json:"addons"`
	IsAvailable     bool                `json:"isAvailable"`
	RatingAvg       decimal.Decimal     `json:"ratingAvg"`
	RatingCount     int                 `json:"ratingCount"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	res := copyFlat[ItemResponse](v)
	if res.Variations == nil {
		res.Variations = []catalog.Variation{}
	}
	if res.Addons == nil {
		res.Addons = []catalog.Addon{}
	}
	return res
}
