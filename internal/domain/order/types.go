package order

import (
	"strings"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus   = errs.Define("invalid order status", errs.ErrValidation)
	ErrInvalidAddress  = errs.Define("address needs line1, city and pincode", errs.ErrValidation)
	ErrInvalidLocation = errs.Define("coordinates out of range", errs.ErrValidation)
	ErrInvalidPayment  = errs.Define("invalid payment details", errs.ErrValidation)
)

type Status string

const (
	StatusPlaced         Status = "PLACED"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusReady          Status = "READY"
	StatusAssigned       Status = "ASSIGNED"
	StatusPicked         Status = "PICKED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusComplete       Status = "COMPLETE"
	StatusCancelled      Status = "CANCELLED"
	StatusRefunded       Status = "REFUNDED"
)

// mainPath is the forward order of the happy path. Side branches are not on it.
var mainPath = []Status{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusAssigned,
	StatusPicked,
	StatusOutForDelivery,
	StatusDelivered,
	StatusComplete,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	return s.rank() >= 0 || s == StatusCancelled || s == StatusRefunded
}

// rank is the position on the main path, or -1 for CANCELLED and REFUNDED.
func (s Status) rank() int {
	for i, st := range mainPath {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusComplete, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsCancellable is true strictly before READY.
func (s Status) IsCancellable() bool {
	r := s.rank()
	return r >= 0 && r < StatusReady.rank()
}

// Before reports whether s comes earlier than o on the main path.
func (s Status) Before(o Status) bool {
	return s.rank() >= 0 && o.rank() >= 0 && s.rank() < o.rank()
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentCard   PaymentMethod = "CARD"
	PaymentUPI    PaymentMethod = "UPI"
	PaymentWallet PaymentMethod = "WALLET"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Gateway string

const (
	GatewayRazorpay Gateway = "RAZORPAY"
	GatewayStripe   Gateway = "STRIPE"
	GatewayPaypal   Gateway = "PAYPAL"
	GatewayNone     Gateway = "NONE"
)

type Payment struct {
	Method  PaymentMethod `json:"method"`
	Status  PaymentStatus `json:"status"`
	Gateway Gateway       `json:"gateway"`
	TxnID   string        `json:"txnId,omitempty"`
}

// NewPayment records how the customer intends to pay. Cash on delivery never
// has a gateway; every other method needs one.
func NewPayment(method PaymentMethod, gateway Gateway, txnID string) (Payment, error) {
	switch method {
	case PaymentCOD:
		gateway = GatewayNone
	case PaymentCard, PaymentUPI, PaymentWallet:
		switch gateway {
		case GatewayRazorpay, GatewayStripe, GatewayPaypal:
		default:
			return Payment{}, ErrInvalidPayment
		}
	default:
		return Payment{}, ErrInvalidPayment
	}
	return Payment{Method: method, Status: PaymentPending, Gateway: gateway, TxnID: strings.TrimSpace(txnID)}, nil
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return GeoPoint{}, ErrInvalidLocation
	}
	return GeoPoint{Lat: lat, Lng: lng}, nil
}

type Address struct {
	Label        string    `json:"label,omitempty"`
	Line1        string    `json:"line1"`
	Line2        string    `json:"line2,omitempty"`
	Landmark     string    `json:"landmark,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state,omitempty"`
	Pincode      string    `json:"pincode"`
	Location     *GeoPoint `json:"location,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
}

func (a Address) Validate() error {
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Pincode) == "" {
		return ErrInvalidAddress
	}
	if a.Location != nil {
		if _, err := NewGeoPoint(a.Location.Lat, a.Location.Lng); err != nil {
			return err
		}
	}
	return nil
}

type OptionSnapshot struct {
	Name  string        `json:"name"`
	Price pricing.Money `json:"price"`
}

// Item is the frozen copy of a cart line. It does not follow later catalog edits.
type Item struct {
	ItemID          uuid.UUID        `json:"itemId"`
	Name            string           `json:"name"`
	Qty             int              `json:"qty"`
	UnitPrice       pricing.Money    `json:"unitPrice"`
	Variation       *OptionSnapshot  `json:"variation,omitempty"`
	Addons          []OptionSnapshot `json:"addons"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	LineTotal       pricing.Money    `json:"lineTotal"`
}

func (it Item) PricingLine() pricing.Line {
	addons := make([]pricing.Money, 0, len(it.Addons))
	for _, a := range it.Addons {
		addons = append(addons, a.Price)
	}
	return pricing.Line{
		UnitPrice:       it.UnitPrice,
		Addons:          addons,
		Qty:             it.Qty,
		DiscountPercent: it.DiscountPercent,
	}
}
