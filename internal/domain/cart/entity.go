package cart

import (
	"slices"
	"strings"
	"time"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxLineQty = 99

var (
	ErrCartNotFound    = errs.Define("cart not found", errs.ErrNotFound)
	ErrLineNotFound    = errs.Define("cart item not found", errs.ErrNotFound)
	ErrInvalidQuantity = errs.Define("quantity must be between 1 and 99", errs.ErrValidation)
	ErrOutletMismatch  = errs.Define("cart already holds items from another outlet", errs.ErrConflict)
	ErrCartEmpty       = errs.Define("cart is empty", errs.ErrValidation)
)

// Line is stored as JSON inside the cart row.
type Line struct {
	ID              uuid.UUID          `json:"id"`
	ItemID          uuid.UUID          `json:"itemId"`
	Name            string             `json:"name"`
	Qty             int                `json:"qty"`
	PriceSnapshot   pricing.Money      `json:"priceSnapshot"`
	Variation       *catalog.Variation `json:"variation,omitempty"`
	Addons          []catalog.Addon    `json:"addons"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
}

func (l Line) PricingLine() pricing.Line {
	addons := make([]pricing.Money, 0, len(l.Addons))
	for _, a := range l.Addons {
		addons = append(addons, a.Price)
	}
	return pricing.Line{
		UnitPrice:       l.PriceSnapshot,
		Addons:          addons,
		Qty:             l.Qty,
		DiscountPercent: l.DiscountPercent,
	}
}

// sameChoice reports whether a new selection should merge into this line.
func (l Line) sameChoice(itemID uuid.UUID, sel catalog.Selection) bool {
	if l.ItemID != itemID {
		return false
	}
	if (l.Variation == nil) != (sel.Variation == nil) {
		return false
	}
	if l.Variation != nil && !strings.EqualFold(l.Variation.Name, sel.Variation.Name) {
		return false
	}
	return slices.Equal(addonKey(l.Addons), addonKey(sel.Addons))
}

func addonKey(addons []catalog.Addon) []string {
	names := make([]string, 0, len(addons))
	for _, a := range addons {
		names = append(names, strings.ToLower(a.Name))
	}
	slices.Sort(names)
	return names
}

type Cart struct {
	id        uuid.UUID
	userID    uuid.UUID
	outletID  *uuid.UUID
	lines     []Line
	couponID  *uuid.UUID
	totals    pricing.Totals
	createdAt time.Time
	updatedAt time.Time
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{id: uuid.New(), userID: userID}
}

func ReconstructCart(
	id, userID uuid.UUID,
	outletID *uuid.UUID,
	lines []Line,
	couponID *uuid.UUID,
	totals pricing.Totals,
	createdAt, updatedAt time.Time,
) *Cart {
	return &Cart{
		id:        id,
		userID:    userID,
		outletID:  outletID,
		lines:     lines,
		couponID:  couponID,
		totals:    totals,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// AddLine merges into an existing line with the same item, variation and
// addons. The merged line keeps its original price snapshot.
func (c *Cart) AddLine(item *catalog.Item, sel catalog.Selection, qty int) (Line, error) {
	if qty < 1 || qty > MaxLineQty {
		return Line{}, ErrInvalidQuantity
	}
	if len(c.lines) > 0 && c.outletID != nil && *c.outletID != item.OutletID() {
		return Line{}, ErrOutletMismatch
	}

	for i := range c.lines {
		if c.lines[i].sameChoice(item.ID(), sel) {
			merged := c.lines[i].Qty + qty
			if merged > MaxLineQty {
				return Line{}, ErrInvalidQuantity
			}
			c.lines[i].Qty = merged
			return c.lines[i], nil
		}
	}

	outlet := item.OutletID()
	c.outletID = &outlet
	line := Line{
		ID:              uuid.New(),
		ItemID:          item.ID(),
		Name:            item.Name(),
		Qty:             qty,
		PriceSnapshot:   sel.UnitPrice,
		Variation:       sel.Variation,
		Addons:          sel.Addons,
		DiscountPercent: item.DiscountPercent(),
	}
	if line.Addons == nil {
		line.Addons = []catalog.Addon{}
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQty removes the line when qty <= 0.
func (c *Cart) UpdateQty(lineID uuid.UUID, qty int) error {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if qty <= 0 {
		c.removeAt(idx)
		return nil
	}
	if qty > MaxLineQty {
		return ErrInvalidQuantity
	}
	c.lines[idx].Qty = qty
	return nil
}

func (c *Cart) RemoveLine(lineID uuid.UUID) error {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.removeAt(idx)
	return nil
}

func (c *Cart) AttachCoupon(id uuid.UUID) { c.couponID = &id }
func (c *Cart) DetachCoupon()             { c.couponID = nil }

// Recalculate reprices the cart. cp must be the attached coupon (or nil when
// none is attached or it no longer exists). A coupon that no longer passes the
// attach checks is detached and the reason returned; totals are still valid.
func (c *Cart) Recalculate(engine *pricing.Engine, cp *coupon.Coupon, now time.Time) error {
	lines := c.PricingLines()

	var detached error
	var terms *pricing.CouponTerms
	if c.couponID != nil {
		if cp == nil || cp.ID() != *c.couponID {
			detached = coupon.ErrNotActive
		} else {
			base := engine.Calculate(lines, nil)
			if err := coupon.CheckAttachable(cp, base.SubTotal, now); err != nil {
				detached = err
			} else {
				t := cp.Discount().Terms()
				terms = &t
			}
		}
		if detached != nil {
			c.couponID = nil
		}
	}

	c.totals = engine.Calculate(lines, terms)
	return detached
}

// Clear runs after checkout.
func (c *Cart) Clear() {
	c.lines = []Line{}
	c.couponID = nil
	c.outletID = nil
	c.totals = pricing.Totals{}
}

func (c *Cart) PricingLines() []pricing.Line {
	out := make([]pricing.Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l.PricingLine())
	}
	return out
}

func (c *Cart) indexOf(lineID uuid.UUID) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ID == lineID })
}

func (c *Cart) removeAt(idx int) {
	c.lines = slices.Delete(c.lines, idx, idx+1)
	if len(c.lines) == 0 {
		c.outletID = nil
	}
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) ID() uuid.UUID            { return c.id }
func (c *Cart) UserID() uuid.UUID        { return c.userID }
func (c *Cart) OutletID() *uuid.UUID     { return c.outletID }
func (c *Cart) Lines() []Line            { return slices.Clone(c.lines) }
func (c *Cart) CouponID() *uuid.UUID     { return c.couponID }
func (c *Cart) Totals() pricing.Totals   { return c.totals }
func (c *Cart) CreatedAt() time.Time     { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time     { return c.updatedAt }
