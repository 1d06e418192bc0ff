package response

import (
	"time"

	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type OutletResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Code      *string       `json:"code,omitempty"`
	City      string        `json:"city"`
	Phone     string        `json:"phone"`
	Hours     *outlet.Hours `json:"hours,omitempty"`
	IsActive  bool          `json:"isActive"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func FromOutletView(v *queries.OutletView) *OutletResponse {
	return copyFlat[OutletResponse](v)
}
