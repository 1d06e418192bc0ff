package queries

import (
	"time"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Page is an offset-paginated result.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageRequest is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Limit = ValidateLimit(p.Limit)
	return p
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ItemView struct {
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

type ItemFilter struct {
	OutletID      *uuid.UUID
	Category      string
	VegOnly       bool
	AvailableOnly bool
	Query         string
	PageRequest
}

type CouponView struct {
	ID           uuid.UUID            `json:"id"`
	Code         string               `json:"code"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Type         pricing.DiscountType `json:"type"`
	Value        decimal.Decimal      `json:"value"`
	MaxDiscount  *pricing.Money       `json:"maxDiscount,omitempty"`
	MinOrder     pricing.Money        `json:"minOrder"`
	StartAt      time.Time            `json:"startAt"`
	EndAt        time.Time            `json:"endAt"`
	IsActive     bool                 `json:"isActive"`
	UsageLimit   *int                 `json:"usageLimit,omitempty"`
	PerUserLimit *int                 `json:"perUserLimit,omitempty"`
	UsedCount    int                  `json:"usedCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// PersonRef is a joined user reference.
type PersonRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

type OrderView struct {
	ID           uuid.UUID             `json:"id"`
	OrderNo      string                `json:"orderNo"`
	CartID       uuid.UUID             `json:"cartId"`
	Customer     PersonRef             `json:"customer"`
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
	Courier      *PersonRef            `json:"courier,omitempty"`
	Delivery     order.Delivery        `json:"delivery"`
	Cancellation *order.Cancellation   `json:"cancellation,omitempty"`
	Payment      order.Payment         `json:"payment"`
	DeliveredAt  *time.Time            `json:"deliveredAt,omitempty"`
	RefundedAt   *time.Time            `json:"refundedAt,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type OrderListItem struct {
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

// OrderFilter narrows the staff order list. Query matches the order number or
// the customer's name, email or phone.
type OrderFilter struct {
	Status *order.Status
	From   *time.Time
	To     *time.Time
	UserID *uuid.UUID
	Query  string
	PageRequest
}

type ReplyView struct {
	Text      string    `json:"text"`
	RepliedBy uuid.UUID `json:"repliedBy"`
	RepliedAt time.Time `json:"repliedAt"`
}

type ReviewListItem struct {
	ID        uuid.UUID  `json:"id"`
	ItemID    uuid.UUID  `json:"itemId"`
	UserID    uuid.UUID  `json:"userId"`
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	Reply     *ReplyView `json:"reply,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type TopItem struct {
	ItemID  uuid.UUID     `json:"itemId"`
	Name    string        `json:"name"`
	Sold    int           `json:"sold"`
	Revenue pricing.Money `json:"revenue"`
}

type SalesReport struct {
	Range             string         `json:"range"`
	Label             string         `json:"label"`
	From              time.Time      `json:"from"`
	To                time.Time      `json:"to"`
	TotalOrders       int            `json:"totalOrders"`
	TotalSales        pricing.Money  `json:"totalSales"`
	AverageOrderValue pricing.Money  `json:"averageOrderValue"`
	ByStatus          map[string]int `json:"byStatus"`
	TopItems          []TopItem      `json:"topItems"`
}

// UserFilter narrows the admin user list. Query matches name, email or phone.
type UserFilter struct {
	Roles  []user.Role
	Status *user.Status
	Query  string
	PageRequest
}

type OutletView struct {
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

type OutletFilter struct {
	City            string
	Query           string
	IncludeInactive bool
	PageRequest
}

type AddressView struct {
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

// CustomerReport counts customers by their orders. Active means at least one
// order inside the window, repeat means more than one order ever.
type CustomerReport struct {
	Days            int       `json:"days"`
	Since           time.Time `json:"since"`
	TotalCustomers  int       `json:"totalCustomers"`
	ActiveCustomers int       `json:"activeCustomers"`
	RepeatCustomers int       `json:"repeatCustomers"`
}

type DeliveryStats struct {
	Delivered  int
	AvgMinutes float64
	OnTime     int
}

type DeliveryReport struct {
	Range            string          `json:"range"`
	Label            string          `json:"label"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TargetMinutes    int             `json:"targetMinutes"`
	Delivered        int             `json:"delivered"`
	AvgMinutes       decimal.Decimal `json:"avgMinutes"`
	OnTimeDeliveries int             `json:"onTimeDeliveries"`
	LateDeliveries   int             `json:"lateDeliveries"`
	OnTimeRate       decimal.Decimal `json:"onTimeRate"`
}
