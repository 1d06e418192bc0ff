package repository

import (
	"context"

	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"

	"github.com/google/uuid"
)

type RatingStatsRepository struct {
	db db.DBTX
}

func NewRatingStatsRepository(dbtx db.DBTX) *RatingStatsRepository {
	return &RatingStatsRepository{db: dbtx}
}

// RecalcItemRating rewrites the denormalized rating columns on items.
func (r *RatingStatsRepository) RecalcItemRating(ctx context.Context, itemID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE items SET
			rating_avg = COALESCE((SELECT round(avg(rating)::numeric, 2) FROM reviews WHERE item_id = $1), 0),
			rating_count = (SELECT count(*) FROM reviews WHERE item_id = $1)
		WHERE id = $1`, itemID)
	if err != nil {
		return infra.WrapRepoErr("failed to recalc item rating", err)
	}
	return nil
}
