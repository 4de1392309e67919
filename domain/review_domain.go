package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSubmitReview = "review submitted successfully"
	MessageFailedSubmitReview  = "failed to submit review"

	ErrRatingOutOfRange      = errors.New("rating must be between 1 and 5")
	ErrReviewContentRequired = errors.New("please provide a title or a body for your review")
	ErrDuplicateReview       = errors.New("you have already reviewed this recipe")
)

// AnonymousReviewerName is used when no reviewer name is supplied and no user
// is signed in.
const AnonymousReviewerName = "Anonymous"

type (
	// Author distinguishes identified reviewers from anonymous ones at the
	// type level. Exactly one of the two implementations exists per review.
	Author interface {
		Name() string
	}

	// IdentifiedAuthor is a signed-in reviewer.
	IdentifiedAuthor struct {
		UserID      uint
		DisplayName string
	}

	// AnonymousAuthor is a reviewer known only by a freeform name.
	AnonymousAuthor struct {
		ReviewerName string
	}

	SubmitReviewRequest struct {
		Rating int    `json:"rating"`
		Title  string `json:"title" validate:"max=120"`
		Body   string `json:"body" validate:"max=2000"`
		// Freeform name, only honored for anonymous submissions.
		ReviewerName string `json:"reviewer_name" validate:"max=80"`
	}

	ReviewResponse struct {
		ID           uint      `json:"id"`
		ReviewerName string    `json:"reviewer_name"`
		Rating       int       `json:"rating"`
		Title        string    `json:"title,omitempty"`
		Body         string    `json:"body,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}
)

func (a IdentifiedAuthor) Name() string { return a.DisplayName }

func (a AnonymousAuthor) Name() string {
	if a.ReviewerName == "" {
		return AnonymousReviewerName
	}
	return a.ReviewerName
}
