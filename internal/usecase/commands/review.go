package commands

//go:generate mockgen -source=review.go -destination=../../../tests/mock/commands/review.go -package=commandsmock

import (
	"context"
	"log/slog"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/review"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewInput struct {
	ItemID  uuid.UUID
	Rating  int
	Comment string
}

type ReviewCommands interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateReviewInput) (*review.Review, error)
	Reply(ctx context.Context, actor order.Actor, reviewID uuid.UUID, text string) (*review.Review, error)
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.CatalogInvalidator
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, cache shared.CatalogInvalidator, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, cache: cache, clock: clk}
}

// Create stores the review and refreshes the item's rating in the same transaction.
func (uc *reviewCommandsImpl) Create(ctx context.Context, userID uuid.UUID, in CreateReviewInput) (*review.Review, error) {
	var created *review.Review
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Items().FindByID(ctx, in.ItemID); err != nil {
			return err
		}
		elig, err := tx.Reviews().Eligibility(ctx, userID, in.ItemID)
		if err != nil {
			return err
		}
		rev, err := review.NewReview(in.ItemID, userID, in.Rating, in.Comment, elig, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Reviews().Create(ctx, rev); err != nil {
			return err
		}
		if err := tx.RatingStats().RecalcItemRating(ctx, in.ItemID); err != nil {
			return err
		}
		created = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := invalidateItem(ctx, uc.cache, in.ItemID); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidation failed", "item_id", in.ItemID, "error", err)
	}
	return created, nil
}

func (uc *reviewCommandsImpl) Reply(ctx context.Context, actor order.Actor, reviewID uuid.UUID, text string) (*review.Review, error) {
	var out *review.Review
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if err := rev.SetReply(actor.Role, actor.UserID, text, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reviews().SaveReply(ctx, rev); err != nil {
			return err
		}
		out = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
