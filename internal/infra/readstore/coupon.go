package readstore

import (
	"context"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponViewColumns = `id, code, title, description, discount_type, discount_value, min_order_cents,
	max_discount_cents, start_at, end_at, is_active, usage_limit, per_user_limit, used_count, created_at, updated_at`

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	v, err := scanCouponView(r.db.QueryRow(ctx, `SELECT `+couponViewColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, infra.WrapRepoErr("failed to find coupon view", err)
	}
	return v, nil
}

// List matches query against the code and title, newest first.
func (r *CouponReadStore) List(ctx context.Context, query string, page queries.PageRequest) ([]*queries.CouponView, int, error) {
	var w whereBuilder
	if query != "" {
		w.add("(code ILIKE ? OR title ILIKE ?)", likePattern(query), likePattern(query))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM coupons`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count coupons", err)
	}

	limit, args := w.page(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+couponViewColumns+` FROM coupons`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	out := make([]*queries.CouponView, 0, page.Limit)
	for rows.Next() {
		v, err := scanCouponView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan coupon view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate coupons", err)
	}
	return out, total, nil
}

func scanCouponView(row pgx.Row) (*queries.CouponView, error) {
	var (
		v                        queries.CouponView
		kind                     string
		value                    pgtype.Numeric
		minOrder                 int64
		maxDiscount              pgtype.Int8
		usageLimit, perUserLimit pgtype.Int4
	)
	err := row.Scan(&v.ID, &v.Code, &v.Title, &v.Description, &kind, &value, &minOrder, &maxDiscount,
		&v.StartAt, &v.EndAt, &v.IsActive, &usageLimit, &perUserLimit, &v.UsedCount, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Type = pricing.DiscountType(kind)
	if v.Value, err = pgconv.DecimalFromNumeric(value); err != nil {
		return nil, err
	}
	v.MinOrder = pricing.NewMoneyFromCents(minOrder)
	if cents := pgconv.Int64PtrFromPgtype(maxDiscount); cents != nil {
		m := pricing.NewMoneyFromCents(*cents)
		v.MaxDiscount = &m
	}
	v.UsageLimit = intPtr(usageLimit)
	v.PerUserLimit = intPtr(perUserLimit)
	return &v, nil
}

func intPtr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
