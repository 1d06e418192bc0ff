package outlet

import (
	"regexp"
	"strings"
	"time"

	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOutletNotFound  = errs.Define("outlet not found", errs.ErrNotFound)
	ErrDuplicateOutlet = errs.Define("an outlet with this name or code already exists", errs.ErrConflict)
	ErrInvalidName     = errs.Define("outlet name must be 1 to 100 characters", errs.ErrValidation)
	ErrInvalidCode     = errs.Define("outlet code must be 2 to 20 letters, digits or dashes", errs.ErrValidation)
	ErrInvalidHours    = errs.Define("opening hours need both times as HH:MM and must differ", errs.ErrValidation)
)

var (
	codeRegex  = regexp.MustCompile(`^[A-Z0-9-]{2,20}$`)
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Hours are wall-clock times at the outlet. Closing before opening means the
// outlet stays open past midnight.
type Hours struct {
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
}

func (h Hours) validate() error {
	if !clockRegex.MatchString(h.Opens) || !clockRegex.MatchString(h.Closes) || h.Opens == h.Closes {
		return ErrInvalidHours
	}
	return nil
}

type Details struct {
	Name     string
	Code     string
	City     string
	Phone    string
	Hours    *Hours
	IsActive bool
}

type Outlet struct {
	id        uuid.UUID
	name      string
	code      string
	city      string
	phone     string
	hours     *Hours
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewOutlet(d Details, now time.Time) (*Outlet, error) {
	o := &Outlet{id: uuid.New(), createdAt: now}
	if err := o.apply(d, now); err != nil {
		return nil, err
	}
	return o, nil
}

func ReconstructOutlet(id uuid.UUID, d Details, createdAt, updatedAt time.Time) *Outlet {
	return &Outlet{
		id:        id,
		name:      d.Name,
		code:      d.Code,
		city:      d.City,
		phone:     d.Phone,
		hours:     d.Hours,
		isActive:  d.IsActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces every detail. Callers patch a copy of Details() first.
func (o *Outlet) Update(d Details, now time.Time) error {
	return o.apply(d, now)
}

func (o *Outlet) apply(d Details, now time.Time) error {
	name := strings.TrimSpace(d.Name)
	if name == "" || len([]rune(name)) > 100 {
		return ErrInvalidName
	}
	code := strings.ToUpper(strings.TrimSpace(d.Code))
	if code != "" && !codeRegex.MatchString(code) {
		return ErrInvalidCode
	}
	if d.Hours != nil {
		if err := d.Hours.validate(); err != nil {
			return err
		}
	}

	o.name = name
	o.code = code
	o.city = strings.TrimSpace(d.City)
	o.phone = strings.TrimSpace(d.Phone)
	o.hours = d.Hours
	o.isActive = d.IsActive
	o.updatedAt = now
	return nil
}

func (o *Outlet) Details() Details {
	return Details{
		Name:     o.name,
		Code:     o.code,
		City:     o.city,
		Phone:    o.phone,
		Hours:    o.hours,
		IsActive: o.isActive,
	}
}

func (o *Outlet) ID() uuid.UUID        { return o.id }
func (o *Outlet) Name() string         { return o.name }
func (o *Outlet) Code() string         { return o.code }
func (o *Outlet) City() string         { return o.city }
func (o *Outlet) Phone() string        { return o.phone }
func (o *Outlet) Hours() *Hours        { return o.hours }
func (o *Outlet) IsActive() bool       { return o.isActive }
func (o *Outlet) CreatedAt() time.Time { return o.createdAt }
func (o *Outlet) UpdatedAt() time.Time { return o.updatedAt }
