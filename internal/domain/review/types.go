package review

import "food-delivery-api/internal/pkg/errs"

var (
	ErrInvalidRating  = errs.Define("rating must be between 1 and 5", errs.ErrValidation)
	ErrEmptyComment   = errs.Define("comment cannot be empty", errs.ErrValidation)
	ErrCommentTooLong = errs.Define("comment exceeds maximum length", errs.ErrValidation)
	ErrEmptyReply     = errs.Define("reply cannot be empty", errs.ErrValidation)

	ErrReviewNotFound      = errs.Define("review not found", errs.ErrNotFound)
	ErrNotEligible         = errs.Define("only customers with a delivered order containing this item can review it", errs.ErrForbidden)
	ErrReviewAlreadyExists = errs.Define("you have already reviewed this item", errs.ErrConflict)
	ErrReplyForbidden      = errs.Define("only managers can reply to reviews", errs.ErrForbidden)
)
