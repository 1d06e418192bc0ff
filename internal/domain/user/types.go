package user

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
	RoleDelivery   Role = "DELIVERY"
	RoleCustomer   Role = "CUSTOMER"
)

// AllRoles is ordered from most to least privileged.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleManager, RoleStaff, RoleDelivery, RoleCustomer}
}

func NewRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleStaff, RoleDelivery, RoleCustomer:
		return true
	default:
		return false
	}
}

// IsStaffSide reports roles that operate the kitchen and back office.
func (r Role) IsStaffSide() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// CanProvision reports whether r may create accounts with the target role or
// move users into it. Only a super admin hands out MANAGER and SUPER_ADMIN.
func (r Role) CanProvision(target Role) bool {
	switch r {
	case RoleSuperAdmin:
		return target.IsValid()
	case RoleManager:
		return target == RoleStaff || target == RoleDelivery || target == RoleCustomer
	default:
		return false
	}
}

// Admin is the user performing an administrative change.
type Admin struct {
	ID   uuid.UUID
	Role Role
}

// MayProvision checks that a may create an account with the given role.
func (a Admin) MayProvision(role Role) error {
	if a.Role != RoleSuperAdmin && a.Role != RoleManager {
		return ErrNotAdministrator
	}
	if !role.IsValid() {
		return ErrInvalidRole
	}
	if !a.Role.CanProvision(role) {
		return ErrOutranked
	}
	return nil
}

func (a Admin) mayAdminister(u *User) error {
	if a.Role != RoleSuperAdmin && a.Role != RoleManager {
		return ErrNotAdministrator
	}
	if a.ID == u.id {
		return ErrSelfAdminister
	}
	if !a.Role.CanProvision(u.role) {
		return ErrOutranked
	}
	return nil
}

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusBlocked
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
