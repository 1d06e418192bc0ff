//go:build unit || e2e

package builder

import (
	reqdto "food-delivery-api/internal/handler/dto/request"
)

type AuthBuilder struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Name:     "Test User",
		Email:    "test@example.com",
		Phone:    "+919876543210",
		Password: "password123",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Password: a.Password,
	}
}
