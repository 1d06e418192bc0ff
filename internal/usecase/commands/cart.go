package commands

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddItemInput struct {
	ItemID    uuid.UUID
	Qty       int
	Variation string
	Addons    []string
}

type CartCommands interface {
	AddItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*shared.PricedCart, error)
	UpdateLine(ctx context.Context, userID, lineID uuid.UUID, qty int) (*shared.PricedCart, error)
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (*shared.PricedCart, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*shared.PricedCart, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*shared.PricedCart, error)
}

type cartCommandsImpl struct {
	uow    shared.UnitOfWork
	engine *pricing.Engine
	clock  clock.Clock
}

func NewCartCommands(uow shared.UnitOfWork, engine *pricing.Engine, clk clock.Clock) CartCommands {
	return &cartCommandsImpl{uow: uow, engine: engine, clock: clk}
}

func (uc *cartCommandsImpl) AddItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*shared.PricedCart, error) {
	return uc.mutate(ctx, userID, true, func(ctx context.Context, tx shared.Tx, c *cart.Cart) error {
		item, err := tx.Items().FindByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		sel, err := item.Resolve(in.Variation, in.Addons)
		if err != nil {
			return err
		}
		_, err = c.AddLine(item, sel, in.Qty)
		return err
	})
}

func (uc *cartCommandsImpl) UpdateLine(ctx context.Context, userID, lineID uuid.UUID, qty int) (*shared.PricedCart, error) {
	return uc.mutate(ctx, userID, false, func(_ context.Context, _ shared.Tx, c *cart.Cart) error {
		return c.UpdateQty(lineID, qty)
	})
}

func (uc *cartCommandsImpl) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (*shared.PricedCart, error) {
	return uc.mutate(ctx, userID, false, func(_ context.Context, _ shared.Tx, c *cart.Cart) error {
		return c.RemoveLine(lineID)
	})
}

// ApplyCoupon runs the full evaluation, usage limits included, before
// attaching. A rejected code leaves the cart untouched.
func (uc *cartCommandsImpl) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*shared.PricedCart, error) {
	cc, err := coupon.NewCouponCode(code)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, userID, false, func(ctx context.Context, tx shared.Tx, c *cart.Cart) error {
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}
		cp, err := tx.Coupons().FindByCode(ctx, cc)
		if err != nil {
			if errs.IsNotFound(err) {
				return coupon.ErrNotActive
			}
			return err
		}
		usage, err := tx.Coupons().CountUsage(ctx, cp.ID(), userID)
		if err != nil {
			return err
		}
		subTotal := uc.engine.Calculate(c.PricingLines(), nil).SubTotal
		if _, err := coupon.Evaluate(cp, subTotal, usage, uc.clock.Now()); err != nil {
			return err
		}
		c.AttachCoupon(cp.ID())
		return nil
	})
}

func (uc *cartCommandsImpl) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*shared.PricedCart, error) {
	return uc.mutate(ctx, userID, false, func(_ context.Context, _ shared.Tx, c *cart.Cart) error {
		c.DetachCoupon()
		return nil
	})
}

// mutate applies fn to the locked cart, reprices it and saves it in one
// transaction. create allows the first add to materialize the cart.
func (uc *cartCommandsImpl) mutate(ctx context.Context, userID uuid.UUID, create bool, fn func(ctx context.Context, tx shared.Tx, c *cart.Cart) error) (*shared.PricedCart, error) {
	var out *shared.PricedCart
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var (
			c   *cart.Cart
			err error
		)
		if create {
			c, err = tx.Carts().EnsureLocked(ctx, userID)
		} else {
			c, err = tx.Carts().LockByUser(ctx, userID)
		}
		if err != nil {
			return err
		}

		if err := fn(ctx, tx, c); err != nil {
			return err
		}

		out, err = shared.Reprice(ctx, tx, uc.engine, c, uc.clock.Now())
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
