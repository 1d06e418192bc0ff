package response

import (
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type AddressResponse struct {
	ID           uuid.UUID       `json:"id"`
	Label        string          `json:"label"`
	Line1        string          `json:"line1"`
	Line2        string          `json:"line2,omitempty"`
	Landmark     string          `json:"landmark,omitempty"`
	City         string          `json:"city"`
	State        string          `json:"state,omitempty"`
	Pincode      string          `json:"pincode"`
	Location     *order.GeoPoint `json:"location,omitempty"`
	ContactName  string          `json:"contactName,omitempty"`
	ContactPhone string          `json:"contactPhone,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	IsDefault    bool            `json:"isDefault"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func FromAddressView(v *queries.AddressView) *AddressResponse {
	return copyFlat[AddressResponse](v)
}

func FromAddressViews(vs []*queries.AddressView) []*AddressResponse {
	out := make([]*AddressResponse, len(vs))
	for i, v := range vs {
		out[i] = FromAddressView(v)
	}
	return out
}
