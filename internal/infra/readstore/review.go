package readstore

import (
	"context"
	"time"

	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reviewListSelect = `
	SELECT r.id, r.item_id, r.user_id, u.name, r.rating, r.comment, r.reply, r.replied_by, r.replied_at, r.created_at
	FROM reviews r JOIN users u ON u.id = r.user_id`

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (r *ReviewReadStore) FindByItemFirstPage(ctx context.Context, itemID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	rows, err := r.db.Query(ctx, reviewListSelect+`
		WHERE r.item_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`, itemID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get reviews first page by item", err)
	}
	return collectReviews(rows)
}

// FindByItemKeyset continues after (lastCreatedAt, lastID) in the same order.
func (r *ReviewReadStore) FindByItemKeyset(ctx context.Context, itemID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	rows, err := r.db.Query(ctx, reviewListSelect+`
		WHERE r.item_id = $1 AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`, itemID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get reviews keyset by item", err)
	}
	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]*queries.ReviewListItem, error) {
	defer rows.Close()
	var out []*queries.ReviewListItem
	for rows.Next() {
		var (
			it        queries.ReviewListItem
			reply     pgtype.Text
			repliedBy *uuid.UUID
			repliedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&it.ID, &it.ItemID, &it.UserID, &it.UserName, &it.Rating, &it.Comment,
			&reply, &repliedBy, &repliedAt, &it.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review", err)
		}
		if reply.Valid && repliedBy != nil && repliedAt.Valid {
			it.Reply = &queries.ReplyView{Text: reply.String, RepliedBy: *repliedBy, RepliedAt: repliedAt.Time}
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reviews", err)
	}
	return out, nil
}
