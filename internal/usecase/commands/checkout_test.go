//go:build unit

package commands_test

import (
	"context"
	"testing"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/shared"
	"food-delivery-api/tests/common/builder"
	sharedmock "food-delivery-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var engine = pricing.NewEngine(pricing.DefaultPolicy())

// txFixture wires a mock transaction whose Within runs the callback inline.
type txFixture struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	users    *sharedmock.MockUserRepository
	outlets  *sharedmock.MockOutletRepository
	address  *sharedmock.MockAddressRepository
	items    *sharedmock.MockItemRepository
	carts    *sharedmock.MockCartRepository
	coupons  *sharedmock.MockCouponRepository
	orders   *sharedmock.MockOrderRepository
	notifier *sharedmock.MockNotifier
	clock    *clock.MockClock
}

func newTxFixture(t *testing.T) *txFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &txFixture{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		users:    sharedmock.NewMockUserRepository(ctrl),
		outlets:  sharedmock.NewMockOutletRepository(ctrl),
		address:  sharedmock.NewMockAddressRepository(ctrl),
		items:    sharedmock.NewMockItemRepository(ctrl),
		carts:    sharedmock.NewMockCartRepository(ctrl),
		coupons:  sharedmock.NewMockCouponRepository(ctrl),
		orders:   sharedmock.NewMockOrderRepository(ctrl),
		notifier: sharedmock.NewMockNotifier(ctrl),
		clock:    clock.NewMockClock(builder.BaseTime),
	}
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	f.tx.EXPECT().Outlets().Return(f.outlets).AnyTimes()
	f.tx.EXPECT().Addresses().Return(f.address).AnyTimes()
	f.tx.EXPECT().Items().Return(f.items).AnyTimes()
	f.tx.EXPECT().Carts().Return(f.carts).AnyTimes()
	f.tx.EXPECT().Coupons().Return(f.coupons).AnyTimes()
	f.tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	return f
}

func (f *txFixture) checkout() commands.CheckoutCommands {
	return commands.NewCheckoutCommands(f.uow, engine, f.notifier, f.clock)
}

// cartWithPizza holds two 100.00 pizzas, optionally with a coupon attached.
func cartWithPizza(t *testing.T, userID uuid.UUID, cp *coupon.Coupon) *cart.Cart {
	t.Helper()
	c := cart.NewCart(userID)
	item := builder.NewItemBuilder().MustBuild()
	sel, err := item.Resolve("", nil)
	require.NoError(t, err)
	_, err = c.AddLine(item, sel, 2)
	require.NoError(t, err)
	if cp != nil {
		c.AttachCoupon(cp.ID())
	}
	return c
}

func checkoutInput() commands.CheckoutInput {
	return commands.CheckoutInput{
		CartID:  uuid.New(),
		Address: &order.Address{Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001"},
		Method:  order.PaymentCOD,
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("success: places the order, clears the cart and queues a notification", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		c := cartWithPizza(t, u.ID(), nil)
		in := checkoutInput()

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(c, nil)
		f.orders.EXPECT().ExistsByCartID(ctx, in.CartID).Return(false, nil)
		f.orders.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		f.carts.EXPECT().Save(ctx, c).DoAndReturn(func(_ context.Context, saved *cart.Cart) error {
			assert.True(t, saved.IsEmpty())
			assert.Nil(t, saved.CouponID())
			return nil
		})
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, gomock.Any()).Return(nil)

		o, err := f.checkout().Checkout(ctx, u.ID(), in)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPlaced, o.Status())
		assert.Equal(t, in.CartID, o.CartID())
		assert.Equal(t, u.ID(), o.UserID())
		assert.Equal(t, "200.00", o.Charges().SubTotal.String())
		assert.Nil(t, o.CouponID())
		require.Len(t, o.Items(), 1)
		assert.Equal(t, 2, o.Items()[0].Qty)
		require.Len(t, o.Timeline(), 1)
		assert.Equal(t, order.StatusPlaced, o.Timeline()[0].Status)
	})

	t.Run("success: reserves one use of the attached coupon", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		cp := builder.NewCouponBuilder().WithLimits(ptr.Of(10), ptr.Of(1)).MustBuild()
		c := cartWithPizza(t, u.ID(), cp)

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(c, nil)
		f.orders.EXPECT().ExistsByCartID(ctx, gomock.Any()).Return(false, nil)
		gomock.InOrder(
			f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil),
			f.coupons.EXPECT().CountUsage(ctx, cp.ID(), u.ID()).Return(coupon.Usage{PerUser: 0, Global: 9}, nil),
			f.coupons.EXPECT().ReserveUsage(ctx, cp.ID()).Return(nil),
		)
		f.orders.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		f.carts.EXPECT().Save(ctx, c).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, gomock.Any()).Return(nil)

		o, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.NoError(t, err)
		require.NotNil(t, o.CouponID())
		assert.Equal(t, cp.ID(), *o.CouponID())
		assert.Equal(t, "20.00", o.Charges().CouponDiscount.String())
	})

	t.Run("error: replayed cartId is a conflict and writes nothing", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(cartWithPizza(t, u.ID(), nil), nil)
		f.orders.EXPECT().ExistsByCartID(ctx, gomock.Any()).Return(true, nil)

		_, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.ErrorIs(t, err, order.ErrDuplicateCheckout)
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("error: coupon that stopped qualifying fails the checkout", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		cp := builder.NewCouponBuilder().WithMinOrder("1000").MustBuild()
		c := cartWithPizza(t, u.ID(), cp)

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(c, nil)
		f.orders.EXPECT().ExistsByCartID(ctx, gomock.Any()).Return(false, nil)
		f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil)

		_, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.ErrorIs(t, err, coupon.ErrMinOrderNotMet)
		assert.True(t, coupon.IsRejection(err))
	})

	t.Run("error: per-user limit is checked under the coupon lock", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		cp := builder.NewCouponBuilder().WithLimits(nil, ptr.Of(1)).MustBuild()
		c := cartWithPizza(t, u.ID(), cp)

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(c, nil)
		f.orders.EXPECT().ExistsByCartID(ctx, gomock.Any()).Return(false, nil)
		f.coupons.EXPECT().LockByID(ctx, cp.ID()).Return(cp, nil)
		f.coupons.EXPECT().CountUsage(ctx, cp.ID(), u.ID()).Return(coupon.Usage{PerUser: 1, Global: 1}, nil)

		_, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.ErrorIs(t, err, coupon.ErrPerUserLimitReached)
	})

	t.Run("error: blocked customer cannot order", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().AsBlocked().MustBuild()
		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)

		_, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.ErrorIs(t, err, user.ErrUserBlocked)
	})

	t.Run("error: missing cart row is an empty cart", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(nil, cart.ErrCartNotFound)

		_, err := f.checkout().Checkout(ctx, u.ID(), checkoutInput())

		require.ErrorIs(t, err, cart.ErrCartEmpty)
	})

	t.Run("success: saved addressId is frozen onto the order", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		saved := savedAddress(t, u.ID(), false)
		in := checkoutInput()
		in.Address = nil
		in.AddressID = ptr.Of(saved.ID())

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.address.EXPECT().FindByID(ctx, saved.ID()).Return(saved, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(cartWithPizza(t, u.ID(), nil), nil)
		f.orders.EXPECT().ExistsByCartID(ctx, in.CartID).Return(false, nil)
		f.orders.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		f.carts.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, gomock.Any()).Return(nil)

		o, err := f.checkout().Checkout(ctx, u.ID(), in)

		require.NoError(t, err)
		assert.Equal(t, saved.Snapshot(), o.Address())
		assert.Equal(t, "Home", o.Address().Label)
	})

	t.Run("success: no address falls back to the default", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		def := savedAddress(t, u.ID(), true)
		in := checkoutInput()
		in.Address = nil

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.address.EXPECT().FindDefault(ctx, u.ID()).Return(def, nil)
		f.carts.EXPECT().LockByUser(ctx, u.ID()).Return(cartWithPizza(t, u.ID(), nil), nil)
		f.orders.EXPECT().ExistsByCartID(ctx, in.CartID).Return(false, nil)
		f.orders.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		f.carts.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, gomock.Any()).Return(nil)

		o, err := f.checkout().Checkout(ctx, u.ID(), in)

		require.NoError(t, err)
		assert.Equal(t, def.Snapshot(), o.Address())
	})

	t.Run("error: no address and no default", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		in := checkoutInput()
		in.Address = nil

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.address.EXPECT().FindDefault(ctx, u.ID()).Return(nil, address.ErrNoDefaultAddress)

		_, err := f.checkout().Checkout(ctx, u.ID(), in)

		require.ErrorIs(t, err, address.ErrNoDefaultAddress)
	})

	t.Run("error: someone else's saved address", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		other := savedAddress(t, uuid.New(), true)
		in := checkoutInput()
		in.Address = nil
		in.AddressID = ptr.Of(other.ID())

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.address.EXPECT().FindByID(ctx, other.ID()).Return(other, nil)

		_, err := f.checkout().Checkout(ctx, u.ID(), in)

		require.ErrorIs(t, err, address.ErrAddressNotFound)
	})

	t.Run("error: input is validated before opening a transaction", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*commands.CheckoutInput)
			want   error
		}{
			{name: "nil cartId", mutate: func(in *commands.CheckoutInput) { in.CartID = uuid.Nil }, want: order.ErrMissingCartID},
			{name: "no pincode", mutate: func(in *commands.CheckoutInput) { in.Address.Pincode = "" }, want: order.ErrInvalidAddress},
			{name: "address and addressId together", mutate: func(in *commands.CheckoutInput) { in.AddressID = ptr.Of(uuid.New()) }, want: commands.ErrAddressChoice},
			{name: "card without gateway", mutate: func(in *commands.CheckoutInput) { in.Method = order.PaymentCard }, want: order.ErrInvalidPayment},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				uow := sharedmock.NewMockUnitOfWork(ctrl)
				uc := commands.NewCheckoutCommands(uow, engine, sharedmock.NewMockNotifier(ctrl), clock.NewMockClock(builder.BaseTime))

				in := checkoutInput()
				tc.mutate(&in)
				_, err := uc.Checkout(ctx, uuid.New(), in)

				require.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestRepeatOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success: copies items and charges under the new cartId", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		prev := builder.NewOrderBuilder().WithUser(u.ID()).MustBuild()
		cartID := uuid.New()

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.orders.EXPECT().FindByID(ctx, prev.ID()).Return(prev, nil)
		f.orders.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		f.notifier.EXPECT().OrderStatusChanged(ctx, f.tx, gomock.Any()).Return(nil)

		actor := order.Actor{UserID: u.ID(), Role: user.RoleCustomer}
		o, err := f.checkout().RepeatOrder(ctx, actor, prev.ID(), cartID)

		require.NoError(t, err)
		assert.NotEqual(t, prev.ID(), o.ID())
		assert.Equal(t, cartID, o.CartID())
		assert.Equal(t, order.StatusPlaced, o.Status())
		assert.True(t, prev.Charges().GrandTotal.Equal(o.Charges().GrandTotal))
	})

	t.Run("error: another customer's order", func(t *testing.T) {
		f := newTxFixture(t)
		u := builder.NewUserBuilder().MustBuild()
		prev := builder.NewOrderBuilder().MustBuild()

		f.users.EXPECT().FindByID(ctx, u.ID()).Return(u, nil)
		f.orders.EXPECT().FindByID(ctx, prev.ID()).Return(prev, nil)

		actor := order.Actor{UserID: u.ID(), Role: user.RoleCustomer}
		_, err := f.checkout().RepeatOrder(ctx, actor, prev.ID(), uuid.New())

		require.ErrorIs(t, err, order.ErrNotOwner)
	})
}
