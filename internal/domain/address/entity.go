package address

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxPerUser caps the address book.
const MaxPerUser = 20

var (
	ErrAddressNotFound  = errs.Define("address not found", errs.ErrNotFound)
	ErrNoDefaultAddress = errs.Define("no default address on file", errs.ErrNotFound)
	ErrTooManyAddresses = errs.Define("address book is full", errs.ErrConflict)
	ErrInvalidLabel     = errs.Define("label must be Home, Work or Other", errs.ErrValidation)
	ErrFieldTooLong     = errs.Define("address field is too long", errs.ErrValidation)
)

type Label string

const (
	LabelHome  Label = "Home"
	LabelWork  Label = "Work"
	LabelOther Label = "Other"
)

// ParseLabel is case-insensitive. Empty means Other.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return LabelHome, nil
	case "work":
		return LabelWork, nil
	case "", "other":
		return LabelOther, nil
	default:
		return "", ErrInvalidLabel
	}
}

type Details struct {
	Label        Label
	Line1        string
	Line2        string
	Landmark     string
	City         string
	State        string
	Pincode      string
	Location     *order.GeoPoint
	ContactName  string
	ContactPhone string
	Instructions string
}

type Address struct {
	id        uuid.UUID
	userID    uuid.UUID
	details   Details
	isDefault bool
	createdAt time.Time
	updatedAt time.Time
}

func NewAddress(userID uuid.UUID, d Details, now time.Time) (*Address, error) {
	a := &Address{id: uuid.New(), userID: userID, createdAt: now}
	if err := a.apply(d, now); err != nil {
		return nil, err
	}
	return a, nil
}

func ReconstructAddress(id, userID uuid.UUID, d Details, isDefault bool, createdAt, updatedAt time.Time) *Address {
	return &Address{
		id:        id,
		userID:    userID,
		details:   d,
		isDefault: isDefault,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Address) Update(d Details, now time.Time) error {
	return a.apply(d, now)
}

func (a *Address) apply(d Details, now time.Time) error {
	label, err := ParseLabel(string(d.Label))
	if err != nil {
		return err
	}
	d.Label = label
	for _, f := range []*string{&d.Line1, &d.Line2, &d.Landmark, &d.City, &d.State, &d.Pincode, &d.ContactName, &d.ContactPhone, &d.Instructions} {
		*f = strings.TrimSpace(*f)
	}
	if len(d.Line1) > 200 || len(d.Line2) > 200 || len(d.Landmark) > 200 || len(d.Instructions) > 500 {
		return ErrFieldTooLong
	}
	if d.ContactPhone != "" {
		p, err := user.NewPhone(d.ContactPhone)
		if err != nil {
			return err
		}
		d.ContactPhone = p.Value()
	}
	if err := snapshot(d).Validate(); err != nil {
		return err
	}

	a.details = d
	a.updatedAt = now
	return nil
}

// EnsureOwnedBy hides other users' addresses as not found.
func (a *Address) EnsureOwnedBy(userID uuid.UUID) error {
	if a.userID != userID {
		return ErrAddressNotFound
	}
	return nil
}

func (a *Address) MarkDefault(now time.Time) {
	if !a.isDefault {
		a.isDefault = true
		a.updatedAt = now
	}
}

// Snapshot is the copy frozen onto an order at checkout.
func (a *Address) Snapshot() order.Address {
	return snapshot(a.details)
}

func snapshot(d Details) order.Address {
	return order.Address{
		Label:        string(d.Label),
		Line1:        d.Line1,
		Line2:        d.Line2,
		Landmark:     d.Landmark,
		City:         d.City,
		State:        d.State,
		Pincode:      d.Pincode,
		Location:     d.Location,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		Instructions: d.Instructions,
	}
}

func (a *Address) ID() uuid.UUID        { return a.id }
func (a *Address) UserID() uuid.UUID    { return a.userID }
func (a *Address) Details() Details     { return a.details }
func (a *Address) IsDefault() bool      { return a.isDefault }
func (a *Address) CreatedAt() time.Time { return a.createdAt }
func (a *Address) UpdatedAt() time.Time { return a.updatedAt }
