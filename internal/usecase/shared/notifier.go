package shared

//go:generate mockgen -source=notifier.go -destination=../../../tests/mock/shared/notifier.go -package=sharedmock

import (
	"context"

	"food-delivery-api/internal/domain/order"
)

// Notifier records order status changes for asynchronous delivery. It writes
// through tx so a rolled back transition never produces a notification.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, tx Tx, o *order.Order) error
}
