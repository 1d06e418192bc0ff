package request

import (
	"food-delivery-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ItemID    uuid.UUID `json:"itemId" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1"`
	Variation string    `json:"variation" binding:"max=100"`
	Addons    []string  `json:"addons" binding:"max=20,dive,max=100"`
}

func (r AddCartItemRequest) ToInput() commands.AddItemInput {
	return commands.AddItemInput{
		ItemID:    r.ItemID,
		Qty:       r.Qty,
		Variation: r.Variation,
		Addons:    r.Addons,
	}
}

// UpdateCartLineRequest removes the line when qty is 0.
type UpdateCartLineRequest struct {
	Qty *int `json:"qty" binding:"required,min=0"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}
