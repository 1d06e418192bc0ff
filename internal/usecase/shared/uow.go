package shared

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/domain/review"
	"food-delivery-api/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction and retries it on serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Users() UserRepository
	Outlets() OutletRepository
	Addresses() AddressRepository
	Items() ItemRepository
	Carts() CartRepository
	Coupons() CouponRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Notifications() NotificationRepository
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	LockByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type OutletRepository interface {
	Create(ctx context.Context, o *outlet.Outlet) error
	Update(ctx context.Context, o *outlet.Outlet) error
	LockByID(ctx context.Context, id uuid.UUID) (*outlet.Outlet, error)
}

type AddressRepository interface {
	Create(ctx context.Context, a *address.Address) error
	Update(ctx context.Context, a *address.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*address.Address, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*address.Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ClearDefault(ctx context.Context, userID uuid.UUID, now time.Time) error
	PromoteLatest(ctx context.Context, userID uuid.UUID, now time.Time) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *catalog.Item) error
	Update(ctx context.Context, it *catalog.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
	OutletExists(ctx context.Context, outletID uuid.UUID) (bool, error)
}

type CartRepository interface {
	LockByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	EnsureLocked(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
}

type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) error
	Update(ctx context.Context, c *coupon.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	LockByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	CountUsage(ctx context.Context, couponID, userID uuid.UUID) (coupon.Usage, error)
	ReserveUsage(ctx context.Context, couponID uuid.UUID) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *order.Order) error
	Update(ctx context.Context, o *order.Order) error
	ExistsByCartID(ctx context.Context, cartID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, rev *review.Review) error
	SaveReply(ctx context.Context, rev *review.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error)
	Eligibility(ctx context.Context, userID, itemID uuid.UUID) (review.Eligibility, error)
}

type RatingStatsRepository interface {
	RecalcItemRating(ctx context.Context, itemID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
