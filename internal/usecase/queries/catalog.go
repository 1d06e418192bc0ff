package queries

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog.go -package=queriesmock

import (
	"context"

	"github.com/google/uuid"
)

type CatalogReadStore interface {
	FindItem(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListItems(ctx context.Context, f ItemFilter) ([]*ItemView, int, error)
}

// CatalogCache is best effort. Implementations log their own failures and
// report a miss instead.
type CatalogCache interface {
	Item(ctx context.Context, id uuid.UUID) (*ItemView, bool)
	StoreItem(ctx context.Context, v *ItemView)
	List(ctx context.Context, f ItemFilter) (*Page[*ItemView], bool)
	StoreList(ctx context.Context, f ItemFilter, p *Page[*ItemView])
}

type CatalogQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, f ItemFilter) (*Page[*ItemView], error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
	cache CatalogCache
}

func NewCatalogQueries(store CatalogReadStore, cache CatalogCache) CatalogQueries {
	return &catalogQueriesImpl{store: store, cache: cache}
}

func (q *catalogQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	if v, ok := q.cache.Item(ctx, id); ok {
		return v, nil
	}
	v, err := q.store.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	q.cache.StoreItem(ctx, v)
	return v, nil
}

func (q *catalogQueriesImpl) List(ctx context.Context, f ItemFilter) (*Page[*ItemView], error) {
	f.PageRequest = f.Normalize()
	if p, ok := q.cache.List(ctx, f); ok {
		return p, nil
	}
	items, total, err := q.store.ListItems(ctx, f)
	if err != nil {
		return nil, err
	}
	p := &Page[*ItemView]{Items: items, Total: total, Page: f.Page, Limit: f.Limit}
	q.cache.StoreList(ctx, f, p)
	return p, nil
}
