//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *txFixture) orderCommands() commands.OrderCommands {
	return commands.NewOrderCommands(f.uow, f.notifier, f.clock)
}

var staff = order.Actor{UserID: uuid.New(), Role: user.RoleStaff}

func TestOrderCommands_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success: locks, saves and notifies", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()

		gomock.InOrder(
			f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil),
			f.orders.EXPECT().Update(ctx, o).Return(nil),
			f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, o).Return(nil),
		)

		got, err := f.orderCommands().UpdateStatus(ctx, staff, o.ID(), order.StatusConfirmed)

		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, got.Status())
		require.Len(t, got.PendingTimeline(), 2)
		assert.Equal(t, staff.UserID, got.Timeline()[1].By)
	})

	t.Run("error: rejected transition is neither saved nor published", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)

		customer := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
		_, err := f.orderCommands().UpdateStatus(ctx, customer, o.ID(), order.StatusConfirmed)

		require.ErrorIs(t, err, order.ErrForbiddenActor)
	})

	t.Run("error: notification failure rolls the transition back", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		boom := errors.New("outbox insert failed")

		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)
		f.orders.EXPECT().Update(ctx, o).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, o).Return(boom)

		got, err := f.orderCommands().UpdateStatus(ctx, staff, o.ID(), order.StatusConfirmed)

		require.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("error: unknown order", func(t *testing.T) {
		f := newTxFixture(t)
		id := uuid.New()
		f.orders.EXPECT().LockByID(ctx, id).Return(nil, order.ErrOrderNotFound)

		_, err := f.orderCommands().UpdateStatus(ctx, staff, id, order.StatusConfirmed)

		require.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestOrderCommands_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("success: records the courier and eta", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		courier := builder.NewUserBuilder().WithRole(user.RoleDelivery).MustBuild()

		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)
		f.users.EXPECT().FindByID(ctx, courier.ID()).Return(courier, nil)
		f.orders.EXPECT().Update(ctx, o).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, o).Return(nil)

		got, err := f.orderCommands().Assign(ctx, staff, o.ID(), commands.AssignInput{CourierID: courier.ID(), EtaMinutes: ptr.Of(25)})

		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, got.Status())
		require.NotNil(t, got.Delivery().AssignedTo)
		assert.Equal(t, courier.ID(), *got.Delivery().AssignedTo)
		assert.Equal(t, 25, *got.Delivery().EtaMinutes)
	})

	testCases := []struct {
		name    string
		courier func() (*user.User, error)
	}{
		{name: "assignee is not a courier", courier: func() (*user.User, error) {
			return builder.NewUserBuilder().WithRole(user.RoleStaff).MustBuild(), nil
		}},
		{name: "courier is blocked", courier: func() (*user.User, error) {
			return builder.NewUserBuilder().WithRole(user.RoleDelivery).AsBlocked().MustBuild(), nil
		}},
		{name: "courier does not exist", courier: func() (*user.User, error) {
			return nil, user.ErrUserNotFound
		}},
	}
	for _, tc := range testCases {
		t.Run("error: "+tc.name, func(t *testing.T) {
			f := newTxFixture(t)
			o := builder.NewOrderBuilder().MustBuild()
			f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)
			f.users.EXPECT().FindByID(ctx, gomock.Any()).Return(tc.courier())

			_, err := f.orderCommands().Assign(ctx, staff, o.ID(), commands.AssignInput{CourierID: uuid.New()})

			require.ErrorIs(t, err, commands.ErrInvalidCourier)
		})
	}
}

func TestOrderCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner cancels a placed order", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}

		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)
		f.orders.EXPECT().Update(ctx, o).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, o).Return(nil)

		got, err := f.orderCommands().Cancel(ctx, owner, o.ID(), commands.CancelInput{Reason: "ordered twice"})

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, got.Status())
		require.NotNil(t, got.Cancellation())
		assert.Equal(t, "ordered twice", got.Cancellation().Reason)
	})

	t.Run("error: someone else's order", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)

		stranger := order.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		_, err := f.orderCommands().Cancel(ctx, stranger, o.ID(), commands.CancelInput{Reason: "nope"})

		require.ErrorIs(t, err, order.ErrNotOwner)
	})
}

func TestOrderCommands_UpdateLocation(t *testing.T) {
	ctx := context.Background()
	f := newTxFixture(t)
	o := builder.NewOrderBuilder().MustBuild()
	courier := order.Actor{UserID: uuid.New(), Role: user.RoleDelivery}
	require.NoError(t, o.Assign(staff, courier.UserID, nil, builder.BaseTime))

	f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)
	f.orders.EXPECT().Update(ctx, o).Return(nil)
	// no status change, so the notifier must stay silent

	point := order.GeoPoint{Lat: 12.93, Lng: 77.62}
	got, err := f.orderCommands().UpdateLocation(ctx, courier, o.ID(), point)

	require.NoError(t, err)
	require.NotNil(t, got.Delivery().LiveLocation)
	assert.Equal(t, point, *got.Delivery().LiveLocation)
	assert.Equal(t, order.StatusAssigned, got.Status())
}

func TestOrderCommands_Delete(t *testing.T) {
	ctx := context.Background()
	manager := order.Actor{UserID: uuid.New(), Role: user.RoleManager}

	t.Run("success: cancelled order is removed", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
		require.NoError(t, o.Cancel(owner, "changed my mind", "", builder.BaseTime))

		gomock.InOrder(
			f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil),
			f.orders.EXPECT().Delete(ctx, o.ID()).Return(nil),
		)

		require.NoError(t, f.orderCommands().Delete(ctx, manager, o.ID()))
	})

	t.Run("error: live order is kept", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)

		err := f.orderCommands().Delete(ctx, manager, o.ID())

		require.ErrorIs(t, err, order.ErrNotCancelled)
	})

	t.Run("error: staff cannot delete", func(t *testing.T) {
		f := newTxFixture(t)
		o := builder.NewOrderBuilder().MustBuild()
		f.orders.EXPECT().LockByID(ctx, o.ID()).Return(o, nil)

		err := f.orderCommands().Delete(ctx, staff, o.ID())

		require.ErrorIs(t, err, order.ErrForbiddenActor)
	})
}
