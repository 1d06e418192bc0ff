package commands

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commandsmock

import (
	"context"

	"food-delivery-api/internal/domain/auth"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/password"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAccountInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     user.Role
}

// UserAdminCommands is the back-office side of account management.
type UserAdminCommands interface {
	CreateAccount(ctx context.Context, by user.Admin, in CreateAccountInput) (*user.User, error)
	Block(ctx context.Context, by user.Admin, userID uuid.UUID) (*user.User, error)
	Unblock(ctx context.Context, by user.Admin, userID uuid.UUID) (*user.User, error)
	ChangeRole(ctx context.Context, by user.Admin, userID uuid.UUID, role user.Role) (*user.User, error)
}

type userAdminCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserAdminCommands(uow shared.UnitOfWork, clk clock.Clock) UserAdminCommands {
	return &userAdminCommandsImpl{uow: uow, clock: clk}
}

func (uc *userAdminCommandsImpl) CreateAccount(ctx context.Context, by user.Admin, in CreateAccountInput) (*user.User, error) {
	if err := by.MayProvision(in.Role); err != nil {
		return nil, err
	}
	reg, err := auth.NewRegistration(in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, err
	}
	if err := password.Validate(reg.Password.Value()); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	hash, err := password.HashPassword(reg.Password.Value())
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	u, err := user.NewUser(reg.Name, reg.Email, reg.Phone, hash, in.Role)
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userAdminCommandsImpl) Block(ctx context.Context, by user.Admin, userID uuid.UUID) (*user.User, error) {
	return uc.modify(ctx, userID, func(u *user.User) error {
		return u.Block(by, uc.clock.Now())
	})
}

func (uc *userAdminCommandsImpl) Unblock(ctx context.Context, by user.Admin, userID uuid.UUID) (*user.User, error) {
	return uc.modify(ctx, userID, func(u *user.User) error {
		return u.Unblock(by, uc.clock.Now())
	})
}

func (uc *userAdminCommandsImpl) ChangeRole(ctx context.Context, by user.Admin, userID uuid.UUID, role user.Role) (*user.User, error) {
	return uc.modify(ctx, userID, func(u *user.User) error {
		return u.ChangeRole(by, role, uc.clock.Now())
	})
}

func (uc *userAdminCommandsImpl) modify(ctx context.Context, userID uuid.UUID, fn func(u *user.User) error) (*user.User, error) {
	var out *user.User
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
