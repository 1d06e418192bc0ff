package order

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errs.Define("order not found", errs.ErrNotFound)
	ErrEmptyOrder        = errs.Define("order must contain at least one item", errs.ErrValidation)
	ErrMissingCartID     = errs.Define("cartId is required", errs.ErrValidation)
	ErrDuplicateCheckout = errs.Define("an order already exists for this cartId", errs.ErrConflict)
)

type TimelineEntry struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	By     uuid.UUID `json:"by"`
}

type Delivery struct {
	AssignedTo        *uuid.UUID `json:"assignedTo,omitempty"`
	EtaMinutes        *int       `json:"etaMinutes,omitempty"`
	LiveLocation      *GeoPoint  `json:"liveLocation,omitempty"`
	LocationUpdatedAt *time.Time `json:"locationUpdatedAt,omitempty"`
}

type Cancellation struct {
	Reason  string    `json:"reason"`
	Comment string    `json:"comment,omitempty"`
	By      uuid.UUID `json:"by"`
	At      time.Time `json:"at"`
}

// Actor is whoever is driving a transition.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

type Order struct {
	id           uuid.UUID
	orderNo      string
	cartID       uuid.UUID
	userID       uuid.UUID
	outletID     uuid.UUID
	address      Address
	items        []Item
	note         string
	charges      pricing.Totals
	couponID     *uuid.UUID
	status       Status
	timeline     []TimelineEntry
	delivery     Delivery
	cancellation *Cancellation
	payment      Payment
	deliveredAt  *time.Time
	refundedAt   *time.Time
	createdAt    time.Time
	updatedAt    time.Time

	// number of timeline entries already stored
	persisted int
}

type PlaceParams struct {
	CartID   uuid.UUID
	UserID   uuid.UUID
	OutletID uuid.UUID
	Address  Address
	Items    []Item
	Note     string
	Charges  pricing.Totals
	CouponID *uuid.UUID
	Payment  Payment
}

// Place creates an order in PLACED with its first timeline entry.
func Place(p PlaceParams, now time.Time) (*Order, error) {
	if p.CartID == uuid.Nil {
		return nil, ErrMissingCartID
	}
	if len(p.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := p.Address.Validate(); err != nil {
		return nil, err
	}
	o := &Order{
		id:       uuid.New(),
		orderNo:  NewOrderNo(now),
		cartID:   p.CartID,
		userID:   p.UserID,
		outletID: p.OutletID,
		address:  p.Address,
		items:    p.Items,
		note:     strings.TrimSpace(p.Note),
		charges:  p.Charges,
		couponID: p.CouponID,
		status:   StatusPlaced,
		payment:  p.Payment,
	}
	if p.Address.Location != nil {
		loc := *p.Address.Location
		o.delivery.LiveLocation = &loc
	}
	o.record(StatusPlaced, p.UserID, now)
	o.createdAt = now
	return o, nil
}

type Snapshot struct {
	ID           uuid.UUID
	OrderNo      string
	CartID       uuid.UUID
	UserID       uuid.UUID
	OutletID     uuid.UUID
	Address      Address
	Items        []Item
	Note         string
	Charges      pricing.Totals
	CouponID     *uuid.UUID
	Status       Status
	Timeline     []TimelineEntry
	Delivery     Delivery
	Cancellation *Cancellation
	Payment      Payment
	DeliveredAt  *time.Time
	RefundedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct treats every timeline entry in s as already stored.
func Reconstruct(s Snapshot) *Order {
	return &Order{
		id:           s.ID,
		orderNo:      s.OrderNo,
		cartID:       s.CartID,
		userID:       s.UserID,
		outletID:     s.OutletID,
		address:      s.Address,
		items:        s.Items,
		note:         s.Note,
		charges:      s.Charges,
		couponID:     s.CouponID,
		status:       s.Status,
		timeline:     s.Timeline,
		delivery:     s.Delivery,
		cancellation: s.Cancellation,
		payment:      s.Payment,
		deliveredAt:  s.DeliveredAt,
		refundedAt:   s.RefundedAt,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		persisted:    len(s.Timeline),
	}
}

// Repeat builds a fresh PLACED order from this order's frozen items.
// Current catalog prices and availability are not consulted. The coupon is
// not carried over, so the copy is repriced without its discount and does not
// count as a use.
func (o *Order) Repeat(actor Actor, newCartID uuid.UUID, engine *pricing.Engine, now time.Time) (*Order, error) {
	if actor.UserID != o.userID {
		return nil, ErrNotOwner
	}
	pay := o.payment
	pay.Status = PaymentPending
	pay.TxnID = ""
	items := make([]Item, len(o.items))
	copy(items, o.items)
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.PricingLine())
	}
	return Place(PlaceParams{
		CartID:   newCartID,
		UserID:   o.userID,
		OutletID: o.outletID,
		Address:  o.address,
		Items:    items,
		Note:     o.note,
		Charges:  engine.Calculate(lines, nil),
		Payment:  pay,
	}, now)
}

func (o *Order) record(status Status, by uuid.UUID, now time.Time) {
	o.status = status
	o.timeline = append(o.timeline, TimelineEntry{Status: status, At: now, By: by})
	o.updatedAt = now
}

// PendingTimeline returns the entries added since the order was loaded.
func (o *Order) PendingTimeline() []TimelineEntry {
	return append([]TimelineEntry(nil), o.timeline[o.persisted:]...)
}

// MarkPersisted is called by the repository after it stored PendingTimeline.
func (o *Order) MarkPersisted() { o.persisted = len(o.timeline) }

func (o *Order) IsOwnedBy(userID uuid.UUID) bool { return o.userID == userID }

func (o *Order) IsAssignedTo(userID uuid.UUID) bool {
	return o.delivery.AssignedTo != nil && *o.delivery.AssignedTo == userID
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) OrderNo() string             { return o.orderNo }
func (o *Order) CartID() uuid.UUID           { return o.cartID }
func (o *Order) UserID() uuid.UUID           { return o.userID }
func (o *Order) OutletID() uuid.UUID         { return o.outletID }
func (o *Order) Address() Address            { return o.address }
func (o *Order) Items() []Item               { return append([]Item(nil), o.items...) }
func (o *Order) Note() string                { return o.note }
func (o *Order) Charges() pricing.Totals     { return o.charges }
func (o *Order) CouponID() *uuid.UUID        { return o.couponID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) Timeline() []TimelineEntry   { return append([]TimelineEntry(nil), o.timeline...) }
func (o *Order) Delivery() Delivery          { return o.delivery }
func (o *Order) Cancellation() *Cancellation { return o.cancellation }
func (o *Order) Payment() Payment            { return o.payment }
func (o *Order) DeliveredAt() *time.Time     { return o.deliveredAt }
func (o *Order) RefundedAt() *time.Time      { return o.refundedAt }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }

// NewOrderNo is human-readable and collision-resistant: ORD-YYYYMMDD-XXXXXX.
func NewOrderNo(now time.Time) string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		copy(b, uuid.New().NodeID())
	}
	return "ORD-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(b))
}
