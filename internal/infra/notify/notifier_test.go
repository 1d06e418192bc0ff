//go:build unit

package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/infra/notify"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/tests/common/builder"
	sharedmock "food-delivery-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutboxNotifier_OrderStatusChanged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tx := sharedmock.NewMockTx(ctrl)
	jobs := sharedmock.NewMockNotificationRepository(ctrl)
	tx.EXPECT().Notifications().Return(jobs)

	o := builder.NewOrderBuilder().MustBuild()
	staff := order.Actor{UserID: uuid.New(), Role: user.RoleStaff}
	confirmedAt := builder.BaseTime.Add(5 * time.Minute)
	require.NoError(t, o.Advance(staff, order.StatusConfirmed, confirmedAt))

	clk := clock.NewMockClock(confirmedAt.Add(time.Second))
	var payload []byte
	jobs.EXPECT().CreateJob(ctx, notify.KindOrderStatusChanged, "order-events", gomock.Any(), clk.Now()).
		DoAndReturn(func(_ context.Context, _, _ string, p []byte, _ time.Time) error {
			payload = p
			return nil
		})

	err := notify.NewOutboxNotifier("order-events", clk).OrderStatusChanged(ctx, tx, o)
	require.NoError(t, err)

	var ev notify.OrderStatusEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	assert.Equal(t, o.ID(), ev.OrderID)
	assert.Equal(t, o.OrderNo(), ev.OrderNo)
	assert.Equal(t, o.UserID(), ev.UserID)
	assert.Equal(t, order.StatusConfirmed, ev.Status)
	// the event carries the transition time, not the enqueue time
	assert.True(t, confirmedAt.Equal(ev.At))
}
