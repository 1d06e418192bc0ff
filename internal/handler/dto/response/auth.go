package response

import (
	"time"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	User        *UserResponse `json:"user"`
}

func FromUser(u *user.User) *UserResponse {
	res := &UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		Role:      string(u.Role()),
		Status:    string(u.Status()),
		LastLogin: u.LastLogin(),
		CreatedAt: u.CreatedAt(),
	}
	if p := u.Phone(); p != nil {
		v := p.Value()
		res.Phone = &v
	}
	return res
}

func FromUserView(v *queries.UserView) *UserResponse {
	return copyFlat[UserResponse](v)
}

func FromAuthResult(r *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		AccessToken: r.Token,
		ExpiresAt:   r.ExpiresAt,
		User:        FromUser(r.User),
	}
}
