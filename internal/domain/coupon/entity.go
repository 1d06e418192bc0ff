package coupon

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRejected marks the evaluation rejections: the caller asked for something
// the coupon does not allow right now. Rejections are validation failures too.
var ErrRejected = errs.New("coupon rejected")

var (
	ErrCouponNotFound      = errs.Define("coupon not found", errs.ErrNotFound)
	ErrNotActive           = errs.Define("invalid or inactive coupon", errs.ErrValidation, ErrRejected)
	ErrNotYetActive        = errs.Define("coupon not yet active", errs.ErrValidation, ErrRejected)
	ErrExpired             = errs.Define("coupon has expired", errs.ErrValidation, ErrRejected)
	ErrMinOrderNotMet      = errs.Define("minimum order not met", errs.ErrValidation, ErrRejected)
	ErrPerUserLimitReached = errs.Define("you have already used this coupon the maximum number of times", errs.ErrValidation, ErrRejected)
	ErrUsageLimitReached   = errs.Define("coupon usage limit reached", errs.ErrValidation, ErrRejected)
	ErrDuplicateCode       = errs.Define("coupon code already exists", errs.ErrConflict)
)

// IsRejection reports whether err is one of the evaluation rejections.
func IsRejection(err error) bool {
	return errs.Is(err, ErrRejected)
}

type Coupon struct {
	id           uuid.UUID
	code         Code
	title        string
	description  string
	discount     Discount
	minOrder     pricing.Money
	startAt      time.Time
	endAt        time.Time
	active       bool
	usageLimit   *int
	perUserLimit *int
	usedCount    int
	createdAt    time.Time
	updatedAt    time.Time
}

type Params struct {
	Code         string
	Title        string
	Description  string
	Discount     Discount
	MinOrder     pricing.Money
	StartAt      time.Time
	EndAt        time.Time
	Active       bool
	UsageLimit   *int
	PerUserLimit *int
}

func NewCoupon(p Params) (*Coupon, error) {
	c := &Coupon{id: uuid.New()}
	if err := c.apply(p); err != nil {
		return nil, err
	}
	return c, nil
}

func ReconstructCoupon(id uuid.UUID, p Params, usedCount int, createdAt, updatedAt time.Time) *Coupon {
	return &Coupon{
		id:           id,
		code:         Code(p.Code),
		title:        p.Title,
		description:  p.Description,
		discount:     p.Discount,
		minOrder:     p.MinOrder,
		startAt:      p.StartAt,
		endAt:        p.EndAt,
		active:       p.Active,
		usageLimit:   p.UsageLimit,
		perUserLimit: p.PerUserLimit,
		usedCount:    usedCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Update replaces every editable field. Callers merge a PATCH into Params first.
func (c *Coupon) Update(p Params) error {
	next := *c
	if err := next.apply(p); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Coupon) Deactivate() { c.active = false }

func (c *Coupon) apply(p Params) error {
	code, err := NewCouponCode(p.Code)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return ErrInvalidTitle
	}
	if !p.EndAt.After(p.StartAt) {
		return ErrInvalidWindow
	}
	if p.MinOrder.IsNegative() {
		return ErrInvalidDiscountAmount
	}
	if (p.UsageLimit != nil && *p.UsageLimit <= 0) || (p.PerUserLimit != nil && *p.PerUserLimit <= 0) {
		return ErrInvalidLimit
	}
	if p.UsageLimit != nil && *p.UsageLimit < c.usedCount {
		return ErrLimitBelowUsage
	}
	c.code = code
	c.title = title
	c.description = strings.TrimSpace(p.Description)
	c.discount = p.Discount
	c.minOrder = p.MinOrder
	c.startAt = p.StartAt
	c.endAt = p.EndAt
	c.active = p.Active
	c.usageLimit = p.UsageLimit
	c.perUserLimit = p.PerUserLimit
	return nil
}

// Params returns the editable fields, ready to be patched and passed to Update.
func (c *Coupon) Params() Params {
	return Params{
		Code:         c.code.String(),
		Title:        c.title,
		Description:  c.description,
		Discount:     c.discount,
		MinOrder:     c.minOrder,
		StartAt:      c.startAt,
		EndAt:        c.endAt,
		Active:       c.active,
		UsageLimit:   c.usageLimit,
		PerUserLimit: c.perUserLimit,
	}
}

func (c *Coupon) ID() uuid.UUID            { return c.id }
func (c *Coupon) Code() Code               { return c.code }
func (c *Coupon) Title() string            { return c.title }
func (c *Coupon) Description() string      { return c.description }
func (c *Coupon) Discount() Discount       { return c.discount }
func (c *Coupon) MinOrder() pricing.Money  { return c.minOrder }
func (c *Coupon) StartAt() time.Time       { return c.startAt }
func (c *Coupon) EndAt() time.Time         { return c.endAt }
func (c *Coupon) IsActive() bool           { return c.active }
func (c *Coupon) UsageLimit() *int         { return c.usageLimit }
func (c *Coupon) PerUserLimit() *int       { return c.perUserLimit }
func (c *Coupon) UsedCount() int           { return c.usedCount }
func (c *Coupon) CreatedAt() time.Time     { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time     { return c.updatedAt }
