package request

import (
	"strings"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/commands"
)

type CreateAddressRequest struct {
	AddressRequest
	IsDefault bool `json:"isDefault"`
}

func (r CreateAddressRequest) ToInput() commands.CreateAddressInput {
	a := r.ToDomain()
	return commands.CreateAddressInput{
		Details: address.Details{
			Label:        address.Label(a.Label),
			Line1:        a.Line1,
			Line2:        a.Line2,
			Landmark:     a.Landmark,
			City:         a.City,
			State:        a.State,
			Pincode:      a.Pincode,
			Location:     a.Location,
			ContactName:  a.ContactName,
			ContactPhone: a.ContactPhone,
			Instructions: a.Instructions,
		},
		MakeDefault: r.IsDefault,
	}
}

type GeoPointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateAddressRequest is a PATCH. Send "location": null to drop the pin.
type UpdateAddressRequest struct {
	Label        *string                         `json:"label" binding:"omitempty,max=50"`
	Line1        *string                         `json:"line1" binding:"omitempty,max=200"`
	Line2        *string                         `json:"line2" binding:"omitempty,max=200"`
	Landmark     *string                         `json:"landmark" binding:"omitempty,max=200"`
	City         *string                         `json:"city" binding:"omitempty,max=100"`
	State        *string                         `json:"state" binding:"omitempty,max=100"`
	Pincode      *string                         `json:"pincode" binding:"omitempty,max=12"`
	Location     patch.Nullable[GeoPointRequest] `json:"location" swaggertype:"object"`
	ContactName  *string                         `json:"contactName" binding:"omitempty,max=100"`
	ContactPhone *string                         `json:"contactPhone" binding:"omitempty,max=20"`
	Instructions *string                         `json:"instructions" binding:"omitempty,max=500"`
}

func (r UpdateAddressRequest) ToInput() commands.UpdateAddressInput {
	in := commands.UpdateAddressInput{
		Line1:        r.Line1,
		Line2:        r.Line2,
		Landmark:     r.Landmark,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		Instructions: r.Instructions,
		Location: patch.Map(r.Location, func(p GeoPointRequest) order.GeoPoint {
			return order.GeoPoint{Lat: p.Lat, Lng: p.Lng}
		}),
	}
	if r.Label != nil {
		l := address.Label(strings.TrimSpace(*r.Label))
		in.Label = &l
	}
	return in
}
