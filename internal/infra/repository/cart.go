package repository

import (
	"context"
	"encoding/json"
	"time"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const cartColumns = `id, user_id, outlet_id, lines, coupon_id, sub_total_cents, item_discount_cents,
	coupon_discount_cents, tax_cents, delivery_fee_cents, grand_total_cents, created_at, updated_at`

type CartRepository struct {
	db db.DBTX
}

func NewCartRepository(dbtx db.DBTX) *CartRepository {
	return &CartRepository{db: dbtx}
}

// LockByUser loads the user's cart with a row lock held until the transaction ends.
func (r *CartRepository) LockByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
	return scanCart(row)
}

// EnsureLocked creates an empty cart on first use and then locks it. Two
// concurrent first adds end up serialized on the same row.
func (r *CartRepository) EnsureLocked(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`, uuid.New(), userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create cart", err)
	}
	return r.LockByUser(ctx, userID)
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	lines, err := json.Marshal(nonNil(c.Lines()))
	if err != nil {
		return errs.Wrap(err, "marshal cart lines")
	}
	t := c.Totals()
	_, err = r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id, outlet_id, lines, coupon_id, sub_total_cents, item_discount_cents,
			coupon_discount_cents, tax_cents, delivery_fee_cents, grand_total_cents, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (user_id) DO UPDATE SET
			outlet_id = EXCLUDED.outlet_id,
			lines = EXCLUDED.lines,
			coupon_id = EXCLUDED.coupon_id,
			sub_total_cents = EXCLUDED.sub_total_cents,
			item_discount_cents = EXCLUDED.item_discount_cents,
			coupon_discount_cents = EXCLUDED.coupon_discount_cents,
			tax_cents = EXCLUDED.tax_cents,
			delivery_fee_cents = EXCLUDED.delivery_fee_cents,
			grand_total_cents = EXCLUDED.grand_total_cents,
			updated_at = now()`,
		c.ID(), c.UserID(), c.OutletID(), lines, c.CouponID(),
		t.SubTotal.Cents(), t.ItemDiscount.Cents(), t.CouponDiscount.Cents(),
		t.Tax.Cents(), t.DeliveryFee.Cents(), t.GrandTotal.Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save cart", err)
	}
	return nil
}

func scanCart(row pgx.Row) (*cart.Cart, error) {
	var (
		id, userID           uuid.UUID
		outletID, couponID   *uuid.UUID
		linesJSON            []byte
		cents                [6]int64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &outletID, &linesJSON, &couponID,
		&cents[0], &cents[1], &cents[2], &cents[3], &cents[4], &cents[5], &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan cart", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(linesJSON, &lines); err != nil {
		return nil, infra.WrapRepoErr("invalid cart lines json", err)
	}

	return cart.ReconstructCart(id, userID, outletID, lines, couponID, totalsFromCents(cents), createdAt, updatedAt), nil
}

// totalsFromCents expects sub total, item discount, coupon discount, tax,
// delivery fee and grand total in that order.
func totalsFromCents(c [6]int64) pricing.Totals {
	t := pricing.Totals{
		SubTotal:       pricing.NewMoneyFromCents(c[0]),
		ItemDiscount:   pricing.NewMoneyFromCents(c[1]),
		CouponDiscount: pricing.NewMoneyFromCents(c[2]),
		Tax:            pricing.NewMoneyFromCents(c[3]),
		DeliveryFee:    pricing.NewMoneyFromCents(c[4]),
		GrandTotal:     pricing.NewMoneyFromCents(c[5]),
	}
	t.Discount = t.ItemDiscount.Add(t.CouponDiscount)
	return t
}
