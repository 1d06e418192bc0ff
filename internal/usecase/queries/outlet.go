package queries

//go:generate mockgen -source=outlet.go -destination=../../../tests/mock/queries/outlet.go -package=queriesmock

import (
	"context"

	"github.com/google/uuid"
)

type OutletReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OutletView, error)
	List(ctx context.Context, f OutletFilter) ([]*OutletView, int, error)
}

type OutletQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*OutletView, error)
	List(ctx context.Context, f OutletFilter) (*Page[*OutletView], error)
}

type outletQueriesImpl struct {
	store OutletReadStore
}

func NewOutletQueries(store OutletReadStore) OutletQueries {
	return &outletQueriesImpl{store: store}
}

func (q *outletQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*OutletView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *outletQueriesImpl) List(ctx context.Context, f OutletFilter) (*Page[*OutletView], error) {
	f.PageRequest = f.Normalize()
	outlets, total, err := q.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page[*OutletView]{Items: outlets, Total: total, Page: f.Page, Limit: f.Limit}, nil
}
