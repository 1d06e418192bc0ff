//go:build unit

package order_test

import (
	"testing"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	staff   = order.Actor{UserID: uuid.New(), Role: user.RoleStaff}
	manager = order.Actor{UserID: uuid.New(), Role: user.RoleManager}
	admin   = order.Actor{UserID: uuid.New(), Role: user.RoleSuperAdmin}
	courier = order.Actor{UserID: uuid.New(), Role: user.RoleDelivery}
)

func tick(n int) time.Time { return builder.BaseTime.Add(time.Duration(n) * time.Minute) }

// driveTo walks a fresh order along the main path up to target.
func driveTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	steps := []order.Status{
		order.StatusConfirmed, order.StatusPreparing, order.StatusReady,
		order.StatusAssigned, order.StatusPicked, order.StatusOutForDelivery, order.StatusDelivered,
	}
	for i, s := range steps {
		if o.Status() == target {
			return
		}
		switch s {
		case order.StatusAssigned:
			require.NoError(t, o.Assign(staff, courier.UserID, nil, tick(i+1)))
		case order.StatusPicked, order.StatusOutForDelivery, order.StatusDelivered:
			require.NoError(t, o.Advance(courier, s, tick(i+1)))
		default:
			require.NoError(t, o.Advance(staff, s, tick(i+1)))
		}
	}
	require.Equal(t, target, o.Status())
}

func TestPlace(t *testing.T) {
	o := builder.NewOrderBuilder().MustBuild()
	assert.Equal(t, order.StatusPlaced, o.Status())
	require.Len(t, o.Timeline(), 1)
	assert.Equal(t, o.UserID(), o.Timeline()[0].By)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, o.OrderNo())
	require.NotNil(t, o.Delivery().LiveLocation)

	t.Run("入力検証", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*builder.OrderBuilder)
			errIs  error
		}{
			{name: "商品なしNG", mutate: func(b *builder.OrderBuilder) { b.Items = nil }, errIs: order.ErrEmptyOrder},
			{name: "cartIdなしNG", mutate: func(b *builder.OrderBuilder) { b.CartID = uuid.Nil }, errIs: order.ErrMissingCartID},
			{name: "住所不備NG", mutate: func(b *builder.OrderBuilder) { b.Address.City = "" }, errIs: order.ErrInvalidAddress},
			{
				name:   "座標範囲外NG",
				mutate: func(b *builder.OrderBuilder) { b.Address.Location = &order.GeoPoint{Lat: 91} },
				errIs:  order.ErrInvalidLocation,
			},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.NewOrderBuilder().With(tc.mutate).BuildDomain()
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestLifecycle_HappyPath(t *testing.T) {
	o := builder.NewOrderBuilder().MustBuild()
	prevLen := len(o.Timeline())

	check := func() {
		t.Helper()
		assert.GreaterOrEqual(t, len(o.Timeline()), prevLen, "timeline never shrinks")
		prevLen = len(o.Timeline())
	}

	require.NoError(t, o.Advance(staff, order.StatusConfirmed, tick(1)))
	check()
	require.NoError(t, o.Advance(manager, order.StatusPreparing, tick(2)))
	check()
	require.NoError(t, o.Advance(staff, order.StatusReady, tick(3)))
	check()
	require.NoError(t, o.Assign(staff, courier.UserID, ptr.Of(25), tick(4)))
	check()
	assert.Equal(t, courier.UserID, *o.Delivery().AssignedTo)
	assert.Equal(t, 25, *o.Delivery().EtaMinutes)

	require.NoError(t, o.Advance(courier, order.StatusPicked, tick(5)))
	require.NoError(t, o.UpdateLocation(courier, order.GeoPoint{Lat: 12.98, Lng: 77.6}, tick(6)))
	check()
	require.NoError(t, o.Advance(courier, order.StatusOutForDelivery, tick(7)))
	require.NoError(t, o.Advance(courier, order.StatusDelivered, tick(8)))
	check()
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, tick(8), *o.DeliveredAt())

	require.NoError(t, o.Advance(manager, order.StatusComplete, tick(9)))
	check()

	got := make([]order.Status, 0, len(o.Timeline()))
	for _, e := range o.Timeline() {
		got = append(got, e.Status)
	}
	assert.Equal(t, []order.Status{
		order.StatusPlaced, order.StatusConfirmed, order.StatusPreparing, order.StatusReady,
		order.StatusAssigned, order.StatusPicked, order.StatusOutForDelivery, order.StatusDelivered,
		order.StatusComplete,
	}, got)
	assert.Equal(t, courier.UserID, o.Timeline()[7].By)
}

func TestAdvance_Rules(t *testing.T) {
	testCases := []struct {
		name   string
		from   order.Status
		actor  order.Actor
		target order.Status
		errIs  error
	}{
		{name: "後戻りNG", from: order.StatusPreparing, actor: staff, target: order.StatusConfirmed, errIs: order.ErrInvalidTransition},
		{name: "同じステータスNG", from: order.StatusConfirmed, actor: staff, target: order.StatusConfirmed, errIs: order.ErrInvalidTransition},
		{name: "スキップはOK", from: order.StatusPlaced, actor: staff, target: order.StatusReady},
		{name: "PLACEDへは戻せない", from: order.StatusConfirmed, actor: staff, target: order.StatusPlaced, errIs: order.ErrInvalidTransition},
		{name: "ASSIGNEDは専用操作", from: order.StatusReady, actor: staff, target: order.StatusAssigned, errIs: order.ErrUseDedicatedOperation},
		{name: "CANCELLEDは専用操作", from: order.StatusPlaced, actor: admin, target: order.StatusCancelled, errIs: order.ErrUseDedicatedOperation},
		{name: "顧客は進められない", from: order.StatusPlaced, actor: order.Actor{UserID: uuid.New(), Role: user.RoleCustomer}, target: order.StatusConfirmed, errIs: order.ErrForbiddenActor},
		{name: "配達員はCONFIRMED不可", from: order.StatusPlaced, actor: courier, target: order.StatusConfirmed, errIs: order.ErrForbiddenActor},
		{name: "未割当でPICKEDはNG", from: order.StatusReady, actor: staff, target: order.StatusPicked, errIs: order.ErrNotAssigned},
		{name: "スタッフはDELIVERED不可", from: order.StatusOutForDelivery, actor: staff, target: order.StatusDelivered, errIs: order.ErrForbiddenActor},
		{name: "スタッフはPICKED可", from: order.StatusAssigned, actor: staff, target: order.StatusPicked},
		{name: "COMPLETEはDELIVEREDからのみ", from: order.StatusOutForDelivery, actor: manager, target: order.StatusComplete, errIs: order.ErrInvalidTransition},
		{name: "DELIVEREDの後は進められない", from: order.StatusDelivered, actor: courier, target: order.StatusDelivered, errIs: order.ErrInvalidTransition},
		{name: "不正なステータス", from: order.StatusPlaced, actor: staff, target: order.Status("NOPE"), errIs: order.ErrInvalidStatus},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := builder.NewOrderBuilder().MustBuild()
			driveTo(t, o, tc.from)
			before := len(o.Timeline())

			err := o.Advance(tc.actor, tc.target, tick(30))
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, o.Status())
				assert.Len(t, o.Timeline(), before)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.target, o.Status())
			assert.Len(t, o.Timeline(), before+1)
		})
	}

	t.Run("別の配達員はNG", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		driveTo(t, o, order.StatusAssigned)
		other := order.Actor{UserID: uuid.New(), Role: user.RoleDelivery}
		require.ErrorIs(t, o.Advance(other, order.StatusPicked, tick(30)), order.ErrNotAssignee)
		require.ErrorIs(t, o.UpdateLocation(other, order.GeoPoint{}, tick(30)), order.ErrNotAssignee)
	})
}

func TestCancel(t *testing.T) {
	t.Run("キャンセル可能な期間", func(t *testing.T) {
		for _, from := range []order.Status{order.StatusPlaced, order.StatusConfirmed, order.StatusPreparing} {
			t.Run(string(from), func(t *testing.T) {
				o := builder.NewOrderBuilder().MustBuild()
				driveTo(t, o, from)
				owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
				require.NoError(t, o.Cancel(owner, "changed my mind", "", tick(30)))
				assert.Equal(t, order.StatusCancelled, o.Status())
				require.NotNil(t, o.Cancellation())
				assert.Equal(t, "changed my mind", o.Cancellation().Reason)
				assert.Equal(t, order.StatusCancelled, o.Timeline()[len(o.Timeline())-1].Status)
			})
		}
	})

	t.Run("READY以降はstate-conflict", func(t *testing.T) {
		for _, from := range []order.Status{order.StatusReady, order.StatusAssigned, order.StatusOutForDelivery, order.StatusDelivered} {
			t.Run(string(from), func(t *testing.T) {
				o := builder.NewOrderBuilder().MustBuild()
				driveTo(t, o, from)
				err := o.Cancel(admin, "too late", "", tick(30))
				require.ErrorIs(t, err, order.ErrCancellationWindowClosed)
				assert.True(t, errs.IsConflict(err))
				assert.Equal(t, from, o.Status())
			})
		}
	})

	t.Run("権限", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		stranger := order.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		require.ErrorIs(t, o.Cancel(stranger, "x", "", tick(1)), order.ErrNotOwner)
		require.ErrorIs(t, o.Cancel(staff, "x", "", tick(1)), order.ErrForbiddenActor)
		require.ErrorIs(t, o.Cancel(manager, "x", "", tick(1)), order.ErrForbiddenActor)
		require.NoError(t, o.Cancel(admin, "kitchen closed", "", tick(1)))
	})

	t.Run("理由必須", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
		require.ErrorIs(t, o.Cancel(owner, "  ", "", tick(1)), order.ErrInvalidCancelReason)
	})

	t.Run("キャンセル済みは再キャンセル不可", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		require.NoError(t, o.Cancel(admin, "dup", "", tick(1)))
		require.ErrorIs(t, o.Cancel(admin, "dup", "", tick(2)), order.ErrCancellationWindowClosed)
		require.ErrorIs(t, o.Advance(staff, order.StatusConfirmed, tick(3)), order.ErrInvalidTransition)
	})
}

func TestEnsureDeletable(t *testing.T) {
	t.Run("キャンセル済みのみ削除可", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		require.ErrorIs(t, o.EnsureDeletable(manager), order.ErrNotCancelled)

		require.NoError(t, o.Cancel(admin, "duplicate", "", tick(1)))
		assert.NoError(t, o.EnsureDeletable(manager))
		assert.NoError(t, o.EnsureDeletable(admin))
	})

	t.Run("返金済みは削除不可", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		require.NoError(t, o.Cancel(admin, "oops", "", tick(1)))
		require.NoError(t, o.Refund(admin, tick(2)))
		err := o.EnsureDeletable(admin)
		require.ErrorIs(t, err, order.ErrNotCancelled)
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("スタッフは削除不可", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		require.NoError(t, o.Cancel(admin, "x", "", tick(1)))
		require.ErrorIs(t, o.EnsureDeletable(staff), order.ErrForbiddenActor)
	})
}

func TestRefund(t *testing.T) {
	o := builder.NewOrderBuilder().MustBuild()
	driveTo(t, o, order.StatusDelivered)

	require.ErrorIs(t, o.Refund(staff, tick(40)), order.ErrForbiddenActor)
	require.NoError(t, o.Refund(manager, tick(40)))
	assert.Equal(t, order.StatusRefunded, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.Payment().Status)
	require.NotNil(t, o.RefundedAt())
	require.ErrorIs(t, o.Refund(admin, tick(41)), order.ErrAlreadyRefunded)

	t.Run("キャンセル後も返金できる", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		require.NoError(t, o.Cancel(admin, "oops", "", tick(1)))
		require.NoError(t, o.Refund(admin, tick(2)))
		assert.Len(t, o.Timeline(), 3)
	})
}

func TestAssign(t *testing.T) {
	o := builder.NewOrderBuilder().MustBuild()
	require.ErrorIs(t, o.Assign(courier, courier.UserID, nil, tick(1)), order.ErrForbiddenActor)
	require.ErrorIs(t, o.Assign(staff, courier.UserID, ptr.Of(0), tick(1)), order.ErrInvalidEta)

	require.NoError(t, o.Assign(staff, courier.UserID, nil, tick(1)))
	other := uuid.New()
	require.NoError(t, o.Assign(manager, other, nil, tick(2)), "reassign while ASSIGNED")
	assert.Equal(t, other, *o.Delivery().AssignedTo)

	require.NoError(t, o.Advance(staff, order.StatusPicked, tick(3)))
	require.ErrorIs(t, o.Assign(staff, courier.UserID, nil, tick(4)), order.ErrInvalidTransition)
}

func TestRepeat(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultPolicy())

	t.Run("正常: スナップショットから新規PLACED", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		driveTo(t, o, order.StatusDelivered)

		owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
		newCart := uuid.New()
		again, err := o.Repeat(owner, newCart, engine, tick(60))
		require.NoError(t, err)

		assert.NotEqual(t, o.ID(), again.ID())
		assert.Equal(t, newCart, again.CartID())
		assert.Equal(t, order.StatusPlaced, again.Status())
		assert.Len(t, again.Timeline(), 1)
		assert.Equal(t, o.Charges().GrandTotal.String(), again.Charges().GrandTotal.String())
		assert.Equal(t, o.Items(), again.Items())
		assert.Nil(t, again.Delivery().AssignedTo)
	})

	t.Run("クーポン割引は引き継がず再計算する", func(t *testing.T) {
		o := builder.NewOrderBuilder().WithCouponDiscount(uuid.New(), "15").MustBuild()
		require.Equal(t, "255.25", o.Charges().GrandTotal.String())

		owner := order.Actor{UserID: o.UserID(), Role: user.RoleCustomer}
		again, err := o.Repeat(owner, uuid.New(), engine, tick(60))
		require.NoError(t, err)

		assert.Nil(t, again.CouponID())
		assert.True(t, again.Charges().CouponDiscount.IsZero())
		assert.Equal(t, "11.00", again.Charges().Tax.String())
		assert.Equal(t, "271.00", again.Charges().GrandTotal.String())
	})

	t.Run("他人の注文はNG", func(t *testing.T) {
		o := builder.NewOrderBuilder().MustBuild()
		_, err := o.Repeat(order.Actor{UserID: uuid.New(), Role: user.RoleCustomer}, uuid.New(), engine, tick(61))
		require.ErrorIs(t, err, order.ErrNotOwner)
	})
}

func TestPendingTimeline(t *testing.T) {
	o := builder.NewOrderBuilder().MustBuild()
	assert.Len(t, o.PendingTimeline(), 1)
	o.MarkPersisted()
	assert.Empty(t, o.PendingTimeline())

	require.NoError(t, o.Advance(staff, order.StatusConfirmed, tick(1)))
	pending := o.PendingTimeline()
	require.Len(t, pending, 1)
	assert.Equal(t, order.StatusConfirmed, pending[0].Status)

	loaded := order.Reconstruct(order.Snapshot{ID: o.ID(), Status: o.Status(), Timeline: o.Timeline()})
	assert.Empty(t, loaded.PendingTimeline())
}
