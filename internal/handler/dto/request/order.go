package request

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidDateRange = errs.Validation("from must not be after to")

type AddressRequest struct {
	Label        string   `json:"label" binding:"max=50"`
	Line1        string   `json:"line1" binding:"required,max=200"`
	Line2        string   `json:"line2" binding:"max=200"`
	Landmark     string   `json:"landmark" binding:"max=200"`
	City         string   `json:"city" binding:"required,max=100"`
	State        string   `json:"state" binding:"max=100"`
	Pincode      string   `json:"pincode" binding:"required,max=12"`
	Lat          *float64 `json:"lat" binding:"required_with=Lng"`
	Lng          *float64 `json:"lng" binding:"required_with=Lat"`
	ContactName  string   `json:"contactName" binding:"max=100"`
	ContactPhone string   `json:"contactPhone" binding:"max=20"`
	Instructions string   `json:"instructions" binding:"max=500"`
}

func (r AddressRequest) ToDomain() order.Address {
	a := order.Address{
		Label:        strings.TrimSpace(r.Label),
		Line1:        strings.TrimSpace(r.Line1),
		Line2:        strings.TrimSpace(r.Line2),
		Landmark:     strings.TrimSpace(r.Landmark),
		City:         strings.TrimSpace(r.City),
		State:        strings.TrimSpace(r.State),
		Pincode:      strings.TrimSpace(r.Pincode),
		ContactName:  strings.TrimSpace(r.ContactName),
		ContactPhone: strings.TrimSpace(r.ContactPhone),
		Instructions: strings.TrimSpace(r.Instructions),
	}
	if r.Lat != nil && r.Lng != nil {
		a.Location = &order.GeoPoint{Lat: *r.Lat, Lng: *r.Lng}
	}
	return a
}

// CheckoutRequest takes an inline address or a saved addressId. With neither
// the default address is used.
type CheckoutRequest struct {
	CartID        uuid.UUID       `json:"cartId" binding:"required"`
	Address       *AddressRequest `json:"address"`
	AddressID     *uuid.UUID      `json:"addressId"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=COD CARD UPI WALLET"`
	Gateway       string          `json:"gateway" binding:"omitempty,oneof=RAZORPAY STRIPE PAYPAL NONE"`
	TxnID         string          `json:"txnId" binding:"max=100"`
	Note          string          `json:"note" binding:"max=500"`
}

func (r CheckoutRequest) ToInput() commands.CheckoutInput {
	in := commands.CheckoutInput{
		CartID:    r.CartID,
		AddressID: r.AddressID,
		Method:    order.PaymentMethod(r.PaymentMethod),
		Gateway:   order.Gateway(r.Gateway),
		TxnID:     r.TxnID,
		Note:      r.Note,
	}
	if r.Address != nil {
		a := r.Address.ToDomain()
		in.Address = &a
	}
	return in
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) ToDomain() (order.Status, error) {
	return order.ParseStatus(r.Status)
}

type AssignRequest struct {
	CourierID  uuid.UUID `json:"courierId" binding:"required"`
	EtaMinutes *int      `json:"etaMinutes" binding:"omitempty,min=1,max=300"`
}

func (r AssignRequest) ToInput() commands.AssignInput {
	return commands.AssignInput{CourierID: r.CourierID, EtaMinutes: r.EtaMinutes}
}

type CancelRequest struct {
	Reason  string `json:"reason" binding:"required,max=500"`
	Comment string `json:"comment" binding:"max=1000"`
}

func (r CancelRequest) ToInput() commands.CancelInput {
	return commands.CancelInput{Reason: r.Reason, Comment: r.Comment}
}

type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" binding:"required,min=-180,max=180"`
}

func (r LocationRequest) ToDomain() (order.GeoPoint, error) {
	return order.NewGeoPoint(*r.Lat, *r.Lng)
}

type RepeatOrderRequest struct {
	CartID uuid.UUID `json:"cartId" binding:"required"`
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q PageQuery) ToPage() queries.PageRequest {
	return queries.PageRequest{Page: q.Page, Limit: q.Limit}.Normalize()
}

type OrderListQuery struct {
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	UserID string     `form:"userId" binding:"omitempty,uuid"`
	Q      string     `form:"q" binding:"max=100"`
	PageQuery
}

// ToFilter treats To as an inclusive calendar day.
func (q OrderListQuery) ToFilter() (queries.OrderFilter, error) {
	f := queries.OrderFilter{Query: strings.TrimSpace(q.Q), PageRequest: q.ToPage()}
	if q.Status != "" {
		st, err := order.ParseStatus(q.Status)
		if err != nil {
			return queries.OrderFilter{}, err
		}
		f.Status = &st
	}
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return queries.OrderFilter{}, errs.Validation("invalid userId")
		}
		f.UserID = &id
	}
	if q.From != nil {
		from := q.From.UTC()
		f.From = &from
	}
	if q.To != nil {
		to := q.To.UTC().AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return queries.OrderFilter{}, ErrInvalidDateRange
	}
	return f, nil
}
