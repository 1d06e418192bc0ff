package response

import (
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type PersonResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

type OrderResponse struct {
	ID           uuid.UUID             `json:"id"`
	OrderNo      string                `json:"orderNo"`
	CartID       uuid.UUID             `json:"cartId"`
	Customer     PersonResponse        `json:"customer"`
	OutletID     uuid.UUID             `json:"outletId"`
	OutletName   string                `json:"outletName"`
	Address      order.Address         `json:"address"`
	Items        []order.Item          `json:"items"`
	Note         string                `json:"note,omitempty"`
	Charges      pricing.Totals        `json:"charges"`
	CouponID     *uuid.UUID            `json:"couponId,omitempty"`
	CouponCode   *string               `json:"couponCode,omitempty"`
	Status       order.Status          `json:"status"`
	Timeline     []order.TimelineEntry `json:"timeline"`
	Courier      *PersonResponse       `json:"courier,omitempty"`
	Delivery     order.Delivery        `json:"delivery"`
	Cancellation *order.Cancellation   `json:"cancellation,omitempty"`
	Payment      order.Payment         `json:"payment"`
	DeliveredAt  *time.Time            `json:"deliveredAt,omitempty"`
	RefundedAt   *time.Time            `json:"refundedAt,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type OrderListItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNo       string              `json:"orderNo"`
	UserID        uuid.UUID           `json:"userId"`
	CustomerName  string              `json:"customerName"`
	OutletName    string              `json:"outletName"`
	Status        order.Status        `json:"status"`
	ItemCount     int                 `json:"itemCount"`
	GrandTotal    pricing.Money       `json:"grandTotal"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	PaymentStatus order.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type StartCheckoutResponse struct {
	CartID uuid.UUID `json:"cartId"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	res := &OrderResponse{
		ID:           v.ID,
		OrderNo:      v.OrderNo,
		CartID:       v.CartID,
		Customer:     PersonResponse(v.Customer),
		OutletID:     v.OutletID,
		OutletName:   v.OutletName,
		Address:      v.Address,
		Items:        v.Items,
		Note:         v.Note,
		Charges:      v.Charges,
		CouponID:     v.CouponID,
		CouponCode:   v.CouponCode,
		Status:       v.Status,
		Timeline:     v.Timeline,
		Delivery:     v.Delivery,
		Cancellation: v.Cancellation,
		Payment:      v.Payment,
		DeliveredAt:  v.DeliveredAt,
		RefundedAt:   v.RefundedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.Courier != nil {
		c := PersonResponse(*v.Courier)
		res.Courier = &c
	}
	return res
}

func FromOrderListItem(v *queries.OrderListItem) *OrderListItemResponse {
	return copyFlat[OrderListItemResponse](v)
}
