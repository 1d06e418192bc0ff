package review

import (
	"strings"
	"time"
	"unicode/utf8"

	"food-delivery-api/internal/domain/user"

	"github.com/google/uuid"
)

type Reply struct {
	Text string
	By   uuid.UUID
	At   time.Time
}

type Review struct {
	id        uuid.UUID
	itemID    uuid.UUID
	userID    uuid.UUID
	rating    Rating
	comment   Comment
	reply     *Reply
	createdAt time.Time
	updatedAt time.Time
}

// Eligibility is what the store knows about the reviewer's history with the item.
type Eligibility struct {
	HasDeliveredOrder bool
	AlreadyReviewed   bool
}

func (e Eligibility) Check() error {
	if !e.HasDeliveredOrder {
		return ErrNotEligible
	}
	if e.AlreadyReviewed {
		return ErrReviewAlreadyExists
	}
	return nil
}

func NewReview(itemID, userID uuid.UUID, ratingValue int, commentText string, elig Eligibility, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if err := elig.Check(); err != nil {
		return nil, err
	}

	return &Review{
		id:        uuid.New(),
		itemID:    itemID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReview(id, itemID, userID uuid.UUID, rating Rating, comment Comment, reply *Reply, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:        id,
		itemID:    itemID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		reply:     reply,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// SetReply overwrites any previous reply.
func (r *Review) SetReply(role user.Role, by uuid.UUID, text string, now time.Time) error {
	if role != user.RoleManager && role != user.RoleSuperAdmin {
		return ErrReplyForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyReply
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return ErrCommentTooLong
	}
	r.reply = &Reply{Text: text, By: by, At: now}
	r.updatedAt = now
	return nil
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) ItemID() uuid.UUID    { return r.itemID }
func (r *Review) UserID() uuid.UUID    { return r.userID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() Comment     { return r.comment }
func (r *Review) Reply() *Reply        { return r.reply }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }
