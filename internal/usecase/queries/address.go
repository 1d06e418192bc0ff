package queries

//go:generate mockgen -source=address.go -destination=../../../tests/mock/queries/address.go -package=queriesmock

import (
	"context"

	"github.com/google/uuid"
)

type AddressReadStore interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*AddressView, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*AddressView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*AddressView, error)
}

// AddressQueries only ever reads the caller's own address book.
type AddressQueries interface {
	Get(ctx context.Context, userID, id uuid.UUID) (*AddressView, error)
	Default(ctx context.Context, userID uuid.UUID) (*AddressView, error)
	List(ctx context.Context, userID uuid.UUID) ([]*AddressView, error)
}

type addressQueriesImpl struct {
	store AddressReadStore
}

func NewAddressQueries(store AddressReadStore) AddressQueries {
	return &addressQueriesImpl{store: store}
}

func (q *addressQueriesImpl) Get(ctx context.Context, userID, id uuid.UUID) (*AddressView, error) {
	return q.store.FindByID(ctx, userID, id)
}

func (q *addressQueriesImpl) Default(ctx context.Context, userID uuid.UUID) (*AddressView, error) {
	return q.store.FindDefault(ctx, userID)
}

func (q *addressQueriesImpl) List(ctx context.Context, userID uuid.UUID) ([]*AddressView, error) {
	out, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*AddressView{}
	}
	return out, nil
}
