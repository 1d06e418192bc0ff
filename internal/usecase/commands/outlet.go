package commands

//go:generate mockgen -source=outlet.go -destination=../../../tests/mock/commands/outlet.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateOutletInput struct {
	Name     string
	Code     string
	City     string
	Phone    string
	Hours    *outlet.Hours
	IsActive *bool
}

// UpdateOutletInput is a PATCH. Hours can be cleared with an explicit null.
type UpdateOutletInput struct {
	Name     *string
	Code     *string
	City     *string
	Phone    *string
	Hours    patch.Nullable[outlet.Hours]
	IsActive *bool
}

type OutletCommands interface {
	Create(ctx context.Context, in CreateOutletInput) (*outlet.Outlet, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateOutletInput) (*outlet.Outlet, error)
}

type outletCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOutletCommands(uow shared.UnitOfWork, clk clock.Clock) OutletCommands {
	return &outletCommandsImpl{uow: uow, clock: clk}
}

func (uc *outletCommandsImpl) Create(ctx context.Context, in CreateOutletInput) (*outlet.Outlet, error) {
	o, err := outlet.NewOutlet(outlet.Details{
		Name:     in.Name,
		Code:     in.Code,
		City:     in.City,
		Phone:    in.Phone,
		Hours:    in.Hours,
		IsActive: patch.Coalesce(in.IsActive, true),
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outlets().Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update can deactivate the outlet, which only blocks new items under it.
func (uc *outletCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateOutletInput) (*outlet.Outlet, error) {
	var out *outlet.Outlet
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Outlets().LockByID(ctx, id)
		if err != nil {
			return err
		}
		d := o.Details()
		patch.Field(&d.Name, in.Name)
		patch.Field(&d.Code, in.Code)
		patch.Field(&d.City, in.City)
		patch.Field(&d.Phone, in.Phone)
		in.Hours.Apply(&d.Hours)
		patch.Field(&d.IsActive, in.IsActive)

		if err := o.Update(d, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Outlets().Update(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
