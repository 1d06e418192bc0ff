package commands

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"food-delivery-api/internal/domain/auth"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/jwt"
	"food-delivery-api/internal/pkg/password"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTokenGeneration = errs.New("token generation failed")

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
	TokenDuration() time.Duration
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	clock  clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, tokens TokenIssuer, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:    uow,
		tokens: tokens,
		clock:  clk,
	}
}

var _ TokenIssuer = (*jwt.Service)(nil)

// Register creates a CUSTOMER account. Staff accounts are provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
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

	u, err := user.NewUser(reg.Name, reg.Email, reg.Phone, hash, user.RoleCustomer)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	return a.issue(u)
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		// Same answer as a wrong password so callers cannot probe for accounts.
		return nil, auth.ErrInvalidCredentials
	}

	var u *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, ferr := tx.Users().FindByEmail(ctx, credentials.Email())
		if ferr != nil {
			if errs.IsNotFound(ferr) {
				return auth.ErrInvalidCredentials
			}
			return ferr
		}
		u = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := password.ComparePassword(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, u.ID(), a.clock.Now())
	})
	if err != nil {
		// Continue without failing - login was successful, only last_login update failed
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return a.issue(u)
}

func (a *authCommandsImpl) issue(u *user.User) (*AuthResult, error) {
	token, err := a.tokens.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		User:      u,
		Token:     token,
		ExpiresAt: a.clock.Now().Add(a.tokens.TokenDuration()),
	}, nil
}
