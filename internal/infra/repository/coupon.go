package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, code, title, description, discount_type, discount_value, min_order_cents,
	max_discount_cents, start_at, end_at, is_active, usage_limit, per_user_limit, used_count, created_at, updated_at`

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO coupons (id, code, title, description, discount_type, discount_value, min_order_cents,
			max_discount_cents, start_at, end_at, is_active, usage_limit, per_user_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		couponArgs(c)...,
	)
	return couponWriteErr("failed to create coupon", err)
}

func (r *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons SET code = $2, title = $3, description = $4, discount_type = $5, discount_value = $6,
			min_order_cents = $7, max_discount_cents = $8, start_at = $9, end_at = $10, is_active = $11,
			usage_limit = $12, per_user_limit = $13, updated_at = now()
		WHERE id = $1`,
		couponArgs(c)...,
	)
	if err != nil {
		return couponWriteErr("failed to update coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
}

func (r *CouponRepository) FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code.String()))
}

// LockByID serializes checkouts that use the same coupon.
func (r *CouponRepository) LockByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1 FOR UPDATE`, id))
}

// CountUsage counts orders, of any status, that used the coupon.
func (r *CouponRepository) CountUsage(ctx context.Context, couponID, userID uuid.UUID) (coupon.Usage, error) {
	var usage coupon.Usage
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE user_id = $2), count(*)
		FROM orders WHERE coupon_id = $1`, couponID, userID,
	).Scan(&usage.PerUser, &usage.Global)
	if err != nil {
		return coupon.Usage{}, infra.WrapRepoErr("failed to count coupon usage", err)
	}
	return usage, nil
}

// ReserveUsage bumps used_count unless the global limit is already reached.
func (r *CouponRepository) ReserveUsage(ctx context.Context, couponID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons SET used_count = used_count + 1
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`, couponID)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrUsageLimitReached
	}
	return nil
}

func couponArgs(c *coupon.Coupon) []any {
	d := c.Discount()
	var maxCents *int64
	if m := d.MaxDiscount(); m != nil {
		v := m.Cents()
		maxCents = &v
	}
	return []any{
		c.ID(), c.Code().String(), c.Title(), c.Description(), string(d.Type()),
		pgconv.NumericFromDecimal(d.Value()), c.MinOrder().Cents(), pgconv.Int64PtrToPgtype(maxCents),
		c.StartAt(), c.EndAt(), c.IsActive(),
		pgconv.Int32PtrToPgtype(toInt32Ptr(c.UsageLimit())), pgconv.Int32PtrToPgtype(toInt32Ptr(c.PerUserLimit())),
	}
}

func couponWriteErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := infra.WrapRepoErr(msg, err)
	if infra.IsKind(wrapped, infra.KindDuplicateKey) {
		return errs.Wrap(coupon.ErrDuplicateCode, msg)
	}
	return wrapped
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		id                       uuid.UUID
		code, title, desc, kind  string
		value                    pgtype.Numeric
		minOrder                 int64
		maxDiscount              pgtype.Int8
		startAt, endAt           time.Time
		active                   bool
		usageLimit, perUserLimit pgtype.Int4
		usedCount                int
		createdAt, updatedAt     time.Time
	)
	err := row.Scan(&id, &code, &title, &desc, &kind, &value, &minOrder, &maxDiscount,
		&startAt, &endAt, &active, &usageLimit, &perUserLimit, &usedCount, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan coupon", err)
	}

	v, err := pgconv.DecimalFromNumeric(value)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discount_value", err)
	}
	var maxMoney *pricing.Money
	if cents := pgconv.Int64PtrFromPgtype(maxDiscount); cents != nil {
		m := pricing.NewMoneyFromCents(*cents)
		maxMoney = &m
	}
	discount, err := coupon.NewDiscount(pricing.DiscountType(kind), v, maxMoney)
	if err != nil {
		return nil, infra.WrapRepoErr("stored discount is invalid", err)
	}

	return coupon.ReconstructCoupon(id, coupon.Params{
		Code:         code,
		Title:        title,
		Description:  desc,
		Discount:     discount,
		MinOrder:     pricing.NewMoneyFromCents(minOrder),
		StartAt:      startAt,
		EndAt:        endAt,
		Active:       active,
		UsageLimit:   fromInt32Ptr(pgconv.Int32PtrFromPgtype(usageLimit)),
		PerUserLimit: fromInt32Ptr(pgconv.Int32PtrFromPgtype(perUserLimit)),
	}, usedCount, createdAt, updatedAt), nil
}

func toInt32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v) // #nosec G115 -- limits are validated to be small positive numbers
	return &n
}

func fromInt32Ptr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
