//go:build unit || e2e

package builder

import (
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         user.Role
	Status       user.Status
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         user.RoleCustomer,
		Status:       user.StatusActive,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	var phone *user.Phone
	if u.Phone != "" {
		p, err := user.NewPhone(u.Phone)
		if err != nil {
			return nil, err
		}
		phone = &p
	}
	return user.ReconstructUser(u.ID, u.Name, email, phone, u.PasswordHash, u.Role, u.Status, nil, BaseTime, BaseTime), nil
}

func (u *UserBuilder) MustBuild() *user.User {
	usr, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return usr
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	v := &queries.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: BaseTime,
	}
	if u.Phone != "" {
		phone := u.Phone
		v.Phone = &phone
	}
	return v
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsBlocked() *UserBuilder {
	u.Status = user.StatusBlocked
	return u
}
