package queries

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/queries/cart.go -package=queriesmock

import (
	"context"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartQueries interface {
	Get(ctx context.Context, userID uuid.UUID) (*shared.PricedCart, error)
}

type cartQueriesImpl struct {
	uow    shared.UnitOfWork
	engine *pricing.Engine
	clock  clock.Clock
}

func NewCartQueries(uow shared.UnitOfWork, engine *pricing.Engine, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{uow: uow, engine: engine, clock: clk}
}

// Get reprices the stored cart and saves the result, dropping a coupon that
// stopped qualifying. A user without a cart row gets an empty, unsaved cart.
func (q *cartQueriesImpl) Get(ctx context.Context, userID uuid.UUID) (*shared.PricedCart, error) {
	var out *shared.PricedCart
	err := q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Carts().LockByUser(ctx, userID)
		if err != nil {
			if errs.IsNotFound(err) {
				out = &shared.PricedCart{Cart: cart.NewCart(userID)}
				return nil
			}
			return err
		}
		out, err = shared.Reprice(ctx, tx, q.engine, c, q.clock.Now())
		if err != nil {
			return err
		}
		return tx.Carts().Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
