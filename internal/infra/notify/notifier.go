package notify

import (
	"context"
	"encoding/json"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const KindOrderStatusChanged = "order.status_changed"

// OrderStatusEvent is the message body published for every status change.
type OrderStatusEvent struct {
	OrderID uuid.UUID    `json:"orderId"`
	OrderNo string       `json:"orderNo"`
	UserID  uuid.UUID    `json:"userId"`
	Status  order.Status `json:"status"`
	At      time.Time    `json:"at"`
}

// OutboxNotifier writes notifications into the outbox table of the running
// transaction. The relay publishes them after commit.
type OutboxNotifier struct {
	topic string
	clock clock.Clock
}

var _ shared.Notifier = (*OutboxNotifier)(nil)

func NewOutboxNotifier(topic string, clk clock.Clock) *OutboxNotifier {
	return &OutboxNotifier{topic: topic, clock: clk}
}

func (n *OutboxNotifier) OrderStatusChanged(ctx context.Context, tx shared.Tx, o *order.Order) error {
	now := n.clock.Now()
	at := now
	if tl := o.Timeline(); len(tl) > 0 {
		at = tl[len(tl)-1].At
	}
	payload, err := json.Marshal(OrderStatusEvent{
		OrderID: o.ID(),
		OrderNo: o.OrderNo(),
		UserID:  o.UserID(),
		Status:  o.Status(),
		At:      at,
	})
	if err != nil {
		return errs.Wrap(err, "encode order status event")
	}
	return tx.Notifications().CreateJob(ctx, KindOrderStatusChanged, n.topic, payload, now)
}
