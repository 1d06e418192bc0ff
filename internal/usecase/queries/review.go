package queries

//go:generate mockgen -source=review.go -destination=../../../tests/mock/queries/review.go -package=queriesmock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReviewReadStore interface {
	FindByItemFirstPage(ctx context.Context, itemID uuid.UUID, limit int32) ([]*ReviewListItem, error)
	FindByItemKeyset(ctx context.Context, itemID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReviewListItem, error)
}

type ReviewQueries interface {
	ListByItem(ctx context.Context, itemID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
}

func NewReviewQueries(repo ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

// ListByItem pages newest first. One extra row is fetched to tell whether
// another page exists.
func (q *reviewQueriesImpl) ListByItem(ctx context.Context, itemID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByItemFirstPage(ctx, itemID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByItemKeyset(ctx, itemID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
