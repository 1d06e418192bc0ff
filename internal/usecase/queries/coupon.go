package queries

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/queries/coupon.go -package=queriesmock

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type CouponReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
	List(ctx context.Context, query string, page PageRequest) ([]*CouponView, int, error)
}

type CouponQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*CouponView, error)
	List(ctx context.Context, query string, page PageRequest) (*Page[*CouponView], error)
}

type couponQueriesImpl struct {
	store CouponReadStore
}

func NewCouponQueries(store CouponReadStore) CouponQueries {
	return &couponQueriesImpl{store: store}
}

func (q *couponQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*CouponView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *couponQueriesImpl) List(ctx context.Context, query string, page PageRequest) (*Page[*CouponView], error) {
	page = page.Normalize()
	items, total, err := q.store.List(ctx, strings.TrimSpace(query), page)
	if err != nil {
		return nil, err
	}
	return &Page[*CouponView]{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}
