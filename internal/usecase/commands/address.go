package commands

//go:generate mockgen -source=address.go -destination=../../../tests/mock/commands/address.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAddressInput struct {
	Details address.Details
	// MakeDefault is implied for the first address.
	MakeDefault bool
}

// UpdateAddressInput is a PATCH. Location can be cleared with an explicit null.
type UpdateAddressInput struct {
	Label        *address.Label
	Line1        *string
	Line2        *string
	Landmark     *string
	City         *string
	State        *string
	Pincode      *string
	Location     patch.Nullable[order.GeoPoint]
	ContactName  *string
	ContactPhone *string
	Instructions *string
}

type AddressCommands interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateAddressInput) (*address.Address, error)
	Update(ctx context.Context, userID, id uuid.UUID, in UpdateAddressInput) (*address.Address, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) (*address.Address, error)
}

type addressCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAddressCommands(uow shared.UnitOfWork, clk clock.Clock) AddressCommands {
	return &addressCommandsImpl{uow: uow, clock: clk}
}

func (uc *addressCommandsImpl) Create(ctx context.Context, userID uuid.UUID, in CreateAddressInput) (*address.Address, error) {
	now := uc.clock.Now()
	a, err := address.NewAddress(userID, in.Details, now)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Addresses().CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n >= address.MaxPerUser {
			return address.ErrTooManyAddresses
		}
		if n == 0 || in.MakeDefault {
			if n > 0 {
				if err := tx.Addresses().ClearDefault(ctx, userID, now); err != nil {
					return err
				}
			}
			a.MarkDefault(now)
		}
		return tx.Addresses().Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *addressCommandsImpl) Update(ctx context.Context, userID, id uuid.UUID, in UpdateAddressInput) (*address.Address, error) {
	var out *address.Address
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		d := a.Details()
		patch.Field(&d.Label, in.Label)
		patch.Field(&d.Line1, in.Line1)
		patch.Field(&d.Line2, in.Line2)
		patch.Field(&d.Landmark, in.Landmark)
		patch.Field(&d.City, in.City)
		patch.Field(&d.State, in.State)
		patch.Field(&d.Pincode, in.Pincode)
		in.Location.Apply(&d.Location)
		patch.Field(&d.ContactName, in.ContactName)
		patch.Field(&d.ContactPhone, in.ContactPhone)
		patch.Field(&d.Instructions, in.Instructions)

		if err := a.Update(d, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Addresses().Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete hands the default over to the newest remaining address.
func (uc *addressCommandsImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Addresses().Delete(ctx, id); err != nil {
			return err
		}
		if !a.IsDefault() {
			return nil
		}
		return tx.Addresses().PromoteLatest(ctx, userID, uc.clock.Now())
	})
}

func (uc *addressCommandsImpl) SetDefault(ctx context.Context, userID, id uuid.UUID) (*address.Address, error) {
	var out *address.Address
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if a.IsDefault() {
			out = a
			return nil
		}
		now := uc.clock.Now()
		if err := tx.Addresses().ClearDefault(ctx, userID, now); err != nil {
			return err
		}
		a.MarkDefault(now)
		if err := tx.Addresses().Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func owned(ctx context.Context, tx shared.Tx, userID, id uuid.UUID) (*address.Address, error) {
	a, err := tx.Addresses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.EnsureOwnedBy(userID); err != nil {
		return nil, err
	}
	return a, nil
}
