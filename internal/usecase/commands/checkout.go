package commands

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAddressChoice = errs.Validation("send either an address or an addressId, not both")

// CheckoutInput takes an inline Address or a saved AddressID. With neither
// the customer's default address is used.
type CheckoutInput struct {
	CartID    uuid.UUID
	Address   *order.Address
	AddressID *uuid.UUID
	Method    order.PaymentMethod
	Gateway   order.Gateway
	TxnID     string
	Note      string
}

type CheckoutCommands interface {
	// StartCheckout hands out a fresh idempotency key for one checkout attempt.
	StartCheckout(ctx context.Context) uuid.UUID
	Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*order.Order, error)
	RepeatOrder(ctx context.Context, actor order.Actor, orderID, cartID uuid.UUID) (*order.Order, error)
}

type checkoutCommandsImpl struct {
	uow      shared.UnitOfWork
	engine   *pricing.Engine
	notifier shared.Notifier
	clock    clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, engine *pricing.Engine, notifier shared.Notifier, clk clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{uow: uow, engine: engine, notifier: notifier, clock: clk}
}

func (uc *checkoutCommandsImpl) StartCheckout(_ context.Context) uuid.UUID {
	return uuid.New()
}

// Checkout turns the caller's cart into a PLACED order. The order insert, the
// coupon reservation, the cart reset and the notification all commit together.
func (uc *checkoutCommandsImpl) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*order.Order, error) {
	if in.CartID == uuid.Nil {
		return nil, order.ErrMissingCartID
	}
	if in.Address != nil && in.AddressID != nil {
		return nil, ErrAddressChoice
	}
	if in.Address != nil {
		if err := in.Address.Validate(); err != nil {
			return nil, err
		}
	}
	payment, err := order.NewPayment(in.Method, in.Gateway, in.TxnID)
	if err != nil {
		return nil, err
	}

	var placed *order.Order
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := u.EnsureCanOrder(); err != nil {
			return err
		}
		addr, err := deliveryAddress(ctx, tx, userID, in)
		if err != nil {
			return err
		}

		// The cart lock serializes checkouts by the same user, so the
		// duplicate check below cannot race with itself.
		c, err := tx.Carts().LockByUser(ctx, userID)
		if err != nil {
			if errs.IsNotFound(err) {
				return cart.ErrCartEmpty
			}
			return err
		}

		exists, err := tx.Orders().ExistsByCartID(ctx, in.CartID)
		if err != nil {
			return err
		}
		if exists {
			return order.ErrDuplicateCheckout
		}
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}

		cp, err := uc.reserveCoupon(ctx, tx, c, userID)
		if err != nil {
			return err
		}

		var couponID *uuid.UUID
		if cp != nil {
			id := cp.ID()
			couponID = &id
		}
		o, err := order.Place(order.PlaceParams{
			CartID:   in.CartID,
			UserID:   userID,
			OutletID: ptr.Deref(c.OutletID()),
			Address:  addr,
			Items:    orderItems(c),
			Note:     in.Note,
			Charges:  c.Totals(),
			CouponID: couponID,
			Payment:  payment,
		}, uc.clock.Now())
		if err != nil {
			return err
		}

		if err := tx.Orders().Insert(ctx, o); err != nil {
			return err
		}

		c.Clear()
		if err := tx.Carts().Save(ctx, c); err != nil {
			return err
		}

		if err := uc.notifier.OrderStatusChanged(ctx, tx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func deliveryAddress(ctx context.Context, tx shared.Tx, userID uuid.UUID, in CheckoutInput) (order.Address, error) {
	if in.Address != nil {
		return *in.Address, nil
	}
	var (
		a   *address.Address
		err error
	)
	if in.AddressID != nil {
		a, err = tx.Addresses().FindByID(ctx, *in.AddressID)
		if err == nil {
			err = a.EnsureOwnedBy(userID)
		}
	} else {
		a, err = tx.Addresses().FindDefault(ctx, userID)
	}
	if err != nil {
		return order.Address{}, err
	}
	return a.Snapshot(), nil
}

// reserveCoupon reprices the cart against the locked coupon row and claims
// one use of it. Concurrent checkouts on the same coupon queue on the lock,
// so the usage counts they read already include each other's orders.
func (uc *checkoutCommandsImpl) reserveCoupon(ctx context.Context, tx shared.Tx, c *cart.Cart, userID uuid.UUID) (*coupon.Coupon, error) {
	now := uc.clock.Now()

	var cp *coupon.Coupon
	if id := c.CouponID(); id != nil {
		locked, err := tx.Coupons().LockByID(ctx, *id)
		if err != nil && !errs.IsNotFound(err) {
			return nil, err
		}
		cp = locked
	}
	// A coupon that stopped qualifying fails the checkout instead of being
	// dropped, so the customer never pays a total they did not see.
	if reason := c.Recalculate(uc.engine, cp, now); reason != nil {
		return nil, reason
	}
	if cp == nil {
		return nil, nil
	}

	usage, err := tx.Coupons().CountUsage(ctx, cp.ID(), userID)
	if err != nil {
		return nil, err
	}
	if _, err := coupon.Evaluate(cp, c.Totals().SubTotal, usage, now); err != nil {
		return nil, err
	}
	if err := tx.Coupons().ReserveUsage(ctx, cp.ID()); err != nil {
		return nil, err
	}
	return cp, nil
}

// RepeatOrder places a copy of a previous order under a new idempotency key.
func (uc *checkoutCommandsImpl) RepeatOrder(ctx context.Context, actor order.Actor, orderID, cartID uuid.UUID) (*order.Order, error) {
	if cartID == uuid.Nil {
		return nil, order.ErrMissingCartID
	}

	var placed *order.Order
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if err := u.EnsureCanOrder(); err != nil {
			return err
		}

		prev, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		o, err := prev.Repeat(actor, cartID, uc.engine, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Orders().Insert(ctx, o); err != nil {
			return err
		}
		if err := uc.notifier.OrderStatusChanged(ctx, tx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// orderItems freezes the cart lines as they were priced.
func orderItems(c *cart.Cart) []order.Item {
	lines := c.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		it := order.Item{
			ItemID:          l.ItemID,
			Name:            l.Name,
			Qty:             l.Qty,
			UnitPrice:       l.PriceSnapshot,
			Addons:          make([]order.OptionSnapshot, 0, len(l.Addons)),
			DiscountPercent: l.DiscountPercent,
			LineTotal:       l.PricingLine().Total(),
		}
		if l.Variation != nil {
			it.Variation = &order.OptionSnapshot{Name: l.Variation.Name, Price: l.Variation.Price}
		}
		for _, a := range l.Addons {
			it.Addons = append(it.Addons, order.OptionSnapshot{Name: a.Name, Price: a.Price})
		}
		items = append(items, it)
	}
	return items
}
