package user

import (
	"strings"
	"time"

	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserBlocked  = errs.Define("user is blocked", errs.ErrForbidden)
	ErrUserNotFound = errs.Define("user not found", errs.ErrNotFound)
	ErrEmailTaken   = errs.Define("email is already registered", errs.ErrConflict)

	ErrNotAdministrator = errs.Define("only managers and super admins administer users", errs.ErrForbidden)
	ErrSelfAdminister   = errs.Define("cannot change your own account status or role", errs.ErrForbidden)
	ErrOutranked        = errs.Define("cannot administer a user with this role", errs.ErrForbidden)
)

type User struct {
	id           uuid.UUID
	name         string
	email        Email
	phone        *Phone
	passwordHash string
	role         Role
	status       Status
	lastLogin    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name string, email Email, phone *Phone, passwordHash string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return nil, ErrInvalidName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		status:       StatusActive,
	}, nil
}

// ReconstructUser rebuilds a persisted user without re-validating it.
func ReconstructUser(
	id uuid.UUID,
	name string,
	email Email,
	phone *Phone,
	passwordHash string,
	role Role,
	status Status,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		status:       status,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// EnsureCanOrder fails for blocked accounts.
func (u *User) EnsureCanOrder() error {
	if u.status == StatusBlocked {
		return ErrUserBlocked
	}
	return nil
}

// Block and Unblock are idempotent.
func (u *User) Block(by Admin, now time.Time) error {
	return u.setStatus(by, StatusBlocked, now)
}

func (u *User) Unblock(by Admin, now time.Time) error {
	return u.setStatus(by, StatusActive, now)
}

func (u *User) setStatus(by Admin, s Status, now time.Time) error {
	if err := by.mayAdminister(u); err != nil {
		return err
	}
	if u.status != s {
		u.status = s
		u.updatedAt = now
	}
	return nil
}

// ChangeRole requires the admin to outrank both the current and the new role.
func (u *User) ChangeRole(by Admin, role Role, now time.Time) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	if err := by.mayAdminister(u); err != nil {
		return err
	}
	if !by.Role.CanProvision(role) {
		return ErrOutranked
	}
	if u.role != role {
		u.role = role
		u.updatedAt = now
	}
	return nil
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Name() string          { return u.name }
func (u *User) Email() Email          { return u.email }
func (u *User) Phone() *Phone         { return u.phone }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) Status() Status        { return u.status }
func (u *User) IsActive() bool        { return u.status == StatusActive }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
