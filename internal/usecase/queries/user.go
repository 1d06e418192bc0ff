package queries

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

import (
	"context"

	"food-delivery-api/internal/domain/user"

	"github.com/google/uuid"
)

type UserQueries interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserView, error)
	Get(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, f UserFilter) (*Page[*UserView], error)
	// Staff lists the back-office roles.
	Staff(ctx context.Context, page PageRequest) (*Page[*UserView], error)
	// DeliveryPersons lists active couriers, the candidates for assignment.
	DeliveryPersons(ctx context.Context, page PageRequest) (*Page[*UserView], error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, f UserFilter) ([]*UserView, int, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) Me(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	return q.readStore.FindByID(ctx, userID)
}

func (q *userQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*UserView, error) {
	return q.readStore.FindByID(ctx, id)
}

func (q *userQueriesImpl) List(ctx context.Context, f UserFilter) (*Page[*UserView], error) {
	f.PageRequest = f.Normalize()
	users, total, err := q.readStore.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page[*UserView]{Items: users, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (q *userQueriesImpl) Staff(ctx context.Context, page PageRequest) (*Page[*UserView], error) {
	return q.List(ctx, UserFilter{
		Roles:       []user.Role{user.RoleSuperAdmin, user.RoleManager, user.RoleStaff},
		PageRequest: page,
	})
}

func (q *userQueriesImpl) DeliveryPersons(ctx context.Context, page PageRequest) (*Page[*UserView], error) {
	active := user.StatusActive
	return q.List(ctx, UserFilter{
		Roles:       []user.Role{user.RoleDelivery},
		Status:      &active,
		PageRequest: page,
	})
}
