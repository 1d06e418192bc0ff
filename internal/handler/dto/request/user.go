package request

import (
	"strings"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"
)

type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"max=20"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
}

func (r CreateAccountRequest) ToInput() (commands.CreateAccountInput, error) {
	role, err := user.NewRole(r.Role)
	if err != nil {
		return commands.CreateAccountInput{}, err
	}
	return commands.CreateAccountInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     role,
	}, nil
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (r ChangeRoleRequest) ToDomain() (user.Role, error) {
	return user.NewRole(r.Role)
}

type UserListQuery struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Q      string `form:"q" binding:"max=100"`
	PageQuery
}

func (q UserListQuery) ToFilter() (queries.UserFilter, error) {
	f := queries.UserFilter{Query: strings.TrimSpace(q.Q), PageRequest: q.ToPage()}
	if q.Role != "" {
		role, err := user.NewRole(q.Role)
		if err != nil {
			return queries.UserFilter{}, err
		}
		f.Roles = []user.Role{role}
	}
	if q.Status != "" {
		st, err := user.ParseStatus(q.Status)
		if err != nil {
			return queries.UserFilter{}, err
		}
		f.Status = &st
	}
	return f, nil
}
