package auth

import (
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"
)

var (
	ErrInvalidCredentials = errs.Define("invalid email or password", errs.ErrUnauthorized)
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}

// Registration is the validated input for a self-service customer signup.
type Registration struct {
	Name     string
	Email    user.Email
	Phone    *user.Phone
	Password user.Password
}

func NewRegistration(name, emailStr, phoneStr, passwordStr string) (Registration, error) {
	creds, err := NewCredentials(emailStr, passwordStr)
	if err != nil {
		return Registration{}, err
	}
	var phone *user.Phone
	if phoneStr != "" {
		p, err := user.NewPhone(phoneStr)
		if err != nil {
			return Registration{}, err
		}
		phone = &p
	}
	return Registration{
		Name:     name,
		Email:    creds.Email(),
		Phone:    phone,
		Password: creds.Password(),
	}, nil
}
