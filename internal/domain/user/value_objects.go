package user

import (
	"regexp"
	"strings"

	"food-delivery-api/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Define("invalid email format", errs.ErrValidation)
	ErrInvalidRole     = errs.Define("invalid role", errs.ErrValidation)
	ErrInvalidStatus   = errs.Define("invalid user status", errs.ErrValidation)
	ErrInvalidName     = errs.Define("name must be 1 to 100 characters", errs.ErrValidation)
	ErrInvalidPhone    = errs.Define("invalid phone number", errs.ErrValidation)
	ErrPasswordTooWeak = errs.Define("password must be at least 8 characters long", errs.ErrValidation)
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

type Email struct {
	value string
}

// NewEmail lowercases so uniqueness is case-insensitive.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if !phoneRegex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) Value() string {
	return p.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
