package commands

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCourier = errs.Validation("assignee must be an active delivery user")

type AssignInput struct {
	CourierID  uuid.UUID
	EtaMinutes *int
}

type CancelInput struct {
	Reason  string
	Comment string
}

type OrderCommands interface {
	UpdateStatus(ctx context.Context, actor order.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error)
	Assign(ctx context.Context, actor order.Actor, orderID uuid.UUID, in AssignInput) (*order.Order, error)
	Cancel(ctx context.Context, actor order.Actor, orderID uuid.UUID, in CancelInput) (*order.Order, error)
	Refund(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error)
	MarkPicked(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error)
	MarkOutForDelivery(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error)
	MarkDelivered(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error)
	UpdateLocation(ctx context.Context, actor order.Actor, orderID uuid.UUID, point order.GeoPoint) (*order.Order, error)
	Delete(ctx context.Context, actor order.Actor, orderID uuid.UUID) error
}

type orderCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	clock    clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock) OrderCommands {
	return &orderCommandsImpl{uow: uow, notifier: notifier, clock: clk}
}

func (uc *orderCommandsImpl) UpdateStatus(ctx context.Context, actor order.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error) {
	return uc.transition(ctx, orderID, true, func(_ context.Context, _ shared.Tx, o *order.Order) error {
		return o.Advance(actor, target, uc.clock.Now())
	})
}

func (uc *orderCommandsImpl) Assign(ctx context.Context, actor order.Actor, orderID uuid.UUID, in AssignInput) (*order.Order, error) {
	return uc.transition(ctx, orderID, true, func(ctx context.Context, tx shared.Tx, o *order.Order) error {
		courier, err := tx.Users().FindByID(ctx, in.CourierID)
		if err != nil {
			if errs.IsNotFound(err) {
				return ErrInvalidCourier
			}
			return err
		}
		if courier.Role() != user.RoleDelivery || !courier.IsActive() {
			return ErrInvalidCourier
		}
		return o.Assign(actor, courier.ID(), in.EtaMinutes, uc.clock.Now())
	})
}

func (uc *orderCommandsImpl) Cancel(ctx context.Context, actor order.Actor, orderID uuid.UUID, in CancelInput) (*order.Order, error) {
	return uc.transition(ctx, orderID, true, func(_ context.Context, _ shared.Tx, o *order.Order) error {
		return o.Cancel(actor, in.Reason, in.Comment, uc.clock.Now())
	})
}

func (uc *orderCommandsImpl) Refund(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error) {
	return uc.transition(ctx, orderID, true, func(_ context.Context, _ shared.Tx, o *order.Order) error {
		return o.Refund(actor, uc.clock.Now())
	})
}

func (uc *orderCommandsImpl) MarkPicked(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error) {
	return uc.UpdateStatus(ctx, actor, orderID, order.StatusPicked)
}

func (uc *orderCommandsImpl) MarkOutForDelivery(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error) {
	return uc.UpdateStatus(ctx, actor, orderID, order.StatusOutForDelivery)
}

func (uc *orderCommandsImpl) MarkDelivered(ctx context.Context, actor order.Actor, orderID uuid.UUID) (*order.Order, error) {
	return uc.UpdateStatus(ctx, actor, orderID, order.StatusDelivered)
}

// UpdateLocation is not a status change, so nothing is published.
func (uc *orderCommandsImpl) UpdateLocation(ctx context.Context, actor order.Actor, orderID uuid.UUID, point order.GeoPoint) (*order.Order, error) {
	return uc.transition(ctx, orderID, false, func(_ context.Context, _ shared.Tx, o *order.Order) error {
		return o.UpdateLocation(actor, point, uc.clock.Now())
	})
}

func (uc *orderCommandsImpl) Delete(ctx context.Context, actor order.Actor, orderID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.EnsureDeletable(actor); err != nil {
			return err
		}
		return tx.Orders().Delete(ctx, orderID)
	})
}

// transition applies fn to the locked order row. Two racing transitions
// serialize on the lock and the second one sees the first one's status.
func (uc *orderCommandsImpl) transition(ctx context.Context, orderID uuid.UUID, notify bool, fn func(ctx context.Context, tx shared.Tx, o *order.Order) error) (*order.Order, error) {
	var out *order.Order
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, o); err != nil {
			return err
		}
		if err := tx.Orders().Update(ctx, o); err != nil {
			return err
		}
		if notify {
			if err := uc.notifier.OrderStatusChanged(ctx, tx, o); err != nil {
				return err
			}
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
