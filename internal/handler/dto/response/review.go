package response

import (
	"time"

	"food-delivery-api/internal/domain/review"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReplyResponse struct {
	Text      string    `json:"text"`
	RepliedBy uuid.UUID `json:"repliedBy"`
	RepliedAt time.Time `json:"repliedAt"`
}

type ReviewResponse struct {
	ID        uuid.UUID      `json:"id"`
	ItemID    uuid.UUID      `json:"itemId"`
	UserID    uuid.UUID      `json:"userId"`
	UserName  string         `json:"userName,omitempty"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	Reply     *ReplyResponse `json:"reply,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	NextCursor *string           `json:"nextCursor,omitempty"`
}

func FromReview(r *review.Review) *ReviewResponse {
	res := &ReviewResponse{
		ID:        r.ID(),
		ItemID:    r.ItemID(),
		UserID:    r.UserID(),
		Rating:    r.Rating().Value(),
		Comment:   r.Comment().String(),
		CreatedAt: r.CreatedAt(),
	}
	if rp := r.Reply(); rp != nil {
		res.Reply = &ReplyResponse{Text: rp.Text, RepliedBy: rp.By, RepliedAt: rp.At}
	}
	return res
}

func FromReviewList(items []*queries.ReviewListItem, next *queries.Cursor) *ReviewListResponse {
	res := &ReviewListResponse{Reviews: make([]*ReviewResponse, len(items))}
	for i, it := range items {
		res.Reviews[i] = &ReviewResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			UserID:    it.UserID,
			UserName:  it.UserName,
			Rating:    it.Rating,
			Comment:   it.Comment,
			CreatedAt: it.CreatedAt,
		}
		if it.Reply != nil {
			res.Reviews[i].Reply = (*ReplyResponse)(it.Reply)
		}
	}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}
