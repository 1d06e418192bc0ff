package request

import (
	"food-delivery-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (r CreateReviewRequest) ToInput(itemID uuid.UUID) commands.CreateReviewInput {
	return commands.CreateReviewInput{ItemID: itemID, Rating: r.Rating, Comment: r.Comment}
}

type ReplyReviewRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type ReviewListQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	After string `form:"after"`
}
