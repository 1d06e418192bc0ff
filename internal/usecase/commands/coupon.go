package commands

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/commands/coupon.go -package=commandsmock

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCouponInput struct {
	Code         string
	Title        string
	Description  string
	Type         pricing.DiscountType
	Value        decimal.Decimal
	MaxDiscount  *pricing.Money
	MinOrder     pricing.Money
	StartAt      time.Time
	EndAt        time.Time
	Active       *bool
	UsageLimit   *int
	PerUserLimit *int
}

// UpdateCouponInput is a PATCH: nil fields keep their current value. The
// optional caps are Nullable so they can also be cleared back to unlimited.
type UpdateCouponInput struct {
	Code         *string
	Title        *string
	Description  *string
	Type         *pricing.DiscountType
	Value        *decimal.Decimal
	MaxDiscount  patch.Nullable[pricing.Money]
	MinOrder     *pricing.Money
	StartAt      *time.Time
	EndAt        *time.Time
	Active       *bool
	UsageLimit   patch.Nullable[int]
	PerUserLimit patch.Nullable[int]
}

type CouponCommands interface {
	Create(ctx context.Context, in CreateCouponInput) (*coupon.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCouponInput) (*coupon.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCouponCommands(uow shared.UnitOfWork) CouponCommands {
	return &couponCommandsImpl{uow: uow}
}

func (uc *couponCommandsImpl) Create(ctx context.Context, in CreateCouponInput) (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(in.Type, in.Value, in.MaxDiscount)
	if err != nil {
		return nil, err
	}
	c, err := coupon.NewCoupon(coupon.Params{
		Code:         in.Code,
		Title:        in.Title,
		Description:  in.Description,
		Discount:     discount,
		MinOrder:     in.MinOrder,
		StartAt:      in.StartAt,
		EndAt:        in.EndAt,
		Active:       patch.Coalesce(in.Active, true),
		UsageLimit:   in.UsageLimit,
		PerUserLimit: in.PerUserLimit,
	})
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *couponCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateCouponInput) (*coupon.Coupon, error) {
	var out *coupon.Coupon
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Coupons().LockByID(ctx, id)
		if err != nil {
			return err
		}

		p := c.Params()
		patch.Field(&p.Code, in.Code)
		patch.Field(&p.Title, in.Title)
		patch.Field(&p.Description, in.Description)
		patch.Field(&p.MinOrder, in.MinOrder)
		patch.Field(&p.StartAt, in.StartAt)
		patch.Field(&p.EndAt, in.EndAt)
		patch.Field(&p.Active, in.Active)
		in.UsageLimit.Apply(&p.UsageLimit)
		in.PerUserLimit.Apply(&p.PerUserLimit)

		if in.Type != nil || in.Value != nil || in.MaxDiscount.Set {
			d := p.Discount
			maxDiscount := d.MaxDiscount()
			in.MaxDiscount.Apply(&maxDiscount)
			p.Discount, err = coupon.NewDiscount(
				patch.Coalesce(in.Type, d.Type()),
				patch.Coalesce(in.Value, d.Value()),
				maxDiscount,
			)
			if err != nil {
				return err
			}
		}

		if err := c.Update(p); err != nil {
			return err
		}
		if err := tx.Coupons().Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the coupon. Orders and carts keep their history with the
// reference set to NULL.
func (uc *couponCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().Delete(ctx, id)
	})
}
