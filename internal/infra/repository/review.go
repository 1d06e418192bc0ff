package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/review"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, item_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		rev.ID(), rev.ItemID(), rev.UserID(), rev.Rating().Value(), rev.Comment().String(), rev.CreatedAt(),
	)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to create review", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return errs.Wrap(review.ErrReviewAlreadyExists, "create review")
		}
		return wrapped
	}
	return nil
}

func (r *ReviewRepository) SaveReply(ctx context.Context, rev *review.Review) error {
	reply := rev.Reply()
	if reply == nil {
		return nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews SET reply = $2, replied_by = $3, replied_at = $4, updated_at = $4 WHERE id = $1`,
		rev.ID(), reply.Text, reply.By, reply.At,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save review reply", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var (
		itemID, userID       uuid.UUID
		rating               int
		comment              string
		replyText            pgtype.Text
		repliedBy            *uuid.UUID
		repliedAt            pgtype.Timestamptz
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT item_id, user_id, rating, comment, reply, replied_by, replied_at, created_at, updated_at
		FROM reviews WHERE id = $1`, id,
	).Scan(&itemID, &userID, &rating, &comment, &replyText, &repliedBy, &repliedAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, review.ErrReviewNotFound
		}
		return nil, infra.WrapRepoErr("failed to find review", err)
	}

	rt, err := review.NewRating(rating)
	if err != nil {
		return nil, infra.WrapRepoErr("stored rating is invalid", err)
	}
	cm, err := review.NewComment(comment)
	if err != nil {
		return nil, infra.WrapRepoErr("stored comment is invalid", err)
	}
	var reply *review.Reply
	if text := pgconv.StringPtrFromPgtype(replyText); text != nil && repliedBy != nil && repliedAt.Valid {
		reply = &review.Reply{Text: *text, By: *repliedBy, At: repliedAt.Time}
	}
	return review.ReconstructReview(id, itemID, userID, rt, cm, reply, createdAt, updatedAt), nil
}

// Eligibility reports whether the user has received an order containing the
// item and whether they already reviewed it.
func (r *ReviewRepository) Eligibility(ctx context.Context, userID, itemID uuid.UUID) (review.Eligibility, error) {
	var e review.Eligibility
	err := r.db.QueryRow(ctx, `
		SELECT
			EXISTS (
				SELECT 1 FROM orders o
				WHERE o.user_id = $1
				  AND o.status IN ('DELIVERED', 'COMPLETE')
				  AND o.items @> jsonb_build_array(jsonb_build_object('itemId', $3::text))
			),
			EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND item_id = $2)`,
		userID, itemID, itemID.String(),
	).Scan(&e.HasDeliveredOrder, &e.AlreadyReviewed)
	if err != nil {
		return review.Eligibility{}, infra.WrapRepoErr("failed to check review eligibility", err)
	}
	return e, nil
}
