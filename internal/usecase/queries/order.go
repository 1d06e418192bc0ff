package queries

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queriesmock

import (
	"context"
	"strings"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderAccess = errs.Forbidden("order access denied")

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, f OrderFilter) ([]*OrderListItem, int, error)
	ListAssignedTo(ctx context.Context, courierID uuid.UUID, page PageRequest) ([]*OrderListItem, int, error)
}

type OrderQueries interface {
	Mine(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[*OrderListItem], error)
	Details(ctx context.Context, actor order.Actor, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, f OrderFilter) (*Page[*OrderListItem], error)
	AssignedToCourier(ctx context.Context, courierID uuid.UUID, page PageRequest) (*Page[*OrderListItem], error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) Mine(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[*OrderListItem], error) {
	return q.List(ctx, OrderFilter{UserID: &userID, PageRequest: page})
}

// Details is visible to the owner, the assigned courier and staff-side roles.
func (q *orderQueriesImpl) Details(ctx context.Context, actor order.Actor, id uuid.UUID) (*OrderView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role.IsStaffSide():
	case actor.Role == user.RoleCustomer && v.Customer.ID == actor.UserID:
	case actor.Role == user.RoleDelivery && v.Courier != nil && v.Courier.ID == actor.UserID:
	default:
		return nil, ErrOrderAccess
	}
	return v, nil
}

func (q *orderQueriesImpl) List(ctx context.Context, f OrderFilter) (*Page[*OrderListItem], error) {
	f.PageRequest = f.Normalize()
	f.Query = strings.TrimSpace(f.Query)
	items, total, err := q.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page[*OrderListItem]{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (q *orderQueriesImpl) AssignedToCourier(ctx context.Context, courierID uuid.UUID, page PageRequest) (*Page[*OrderListItem], error) {
	page = page.Normalize()
	items, total, err := q.store.ListAssignedTo(ctx, courierID, page)
	if err != nil {
		return nil, err
	}
	return &Page[*OrderListItem]{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}
