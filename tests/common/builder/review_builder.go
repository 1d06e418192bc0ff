//go:build unit || e2e

package builder

import (
	"time"

	domreview "food-delivery-api/internal/domain/review"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ItemID      uuid.UUID
	UserID      uuid.UUID
	Rating      int
	Comment     string
	Eligibility domreview.Eligibility
	CreatedAt   time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		ItemID:      uuid.New(),
		UserID:      uuid.New(),
		Rating:      5,
		Comment:     "Excellent pizza!",
		Eligibility: domreview.Eligibility{HasDeliveredOrder: true},
		CreatedAt:   BaseTime,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.ItemID, r.UserID, r.Rating, r.Comment, r.Eligibility, r.CreatedAt)
}

func (r *ReviewBuilder) MustBuild() *domreview.Review {
	rv, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return rv
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithoutDeliveredOrder() *ReviewBuilder {
	r.Eligibility.HasDeliveredOrder = false
	return r
}

func (r *ReviewBuilder) AlreadyReviewed() *ReviewBuilder {
	r.Eligibility.AlreadyReviewed = true
	return r
}
