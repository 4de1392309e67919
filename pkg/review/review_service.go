package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"nalastable/domain"
	"nalastable/entities"
	"nalastable/pkg/user"

	"gorm.io/gorm"
)

type (
	ReviewService interface {
		SubmitReview(ctx context.Context, recipeID uint, req domain.SubmitReviewRequest, userID uint) (domain.ReviewResponse, error)
	}

	reviewService struct {
		reviewRepository ReviewRepository
		userRepository   user.UserRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository, userRepository user.UserRepository) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		userRepository:   userRepository,
	}
}

// resolveAuthor builds the author variant for a submission: a signed-in
// caller becomes an IdentifiedAuthor carrying their display name, everyone
// else an AnonymousAuthor with the freeform name from the form. userID 0
// means not signed in.
func (s *reviewService) resolveAuthor(ctx context.Context, userID uint, reviewerName string) (domain.Author, error) {
	if userID == 0 {
		return domain.AnonymousAuthor{ReviewerName: strings.TrimSpace(reviewerName)}, nil
	}

	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stale token for a deleted account, treat as anonymous.
			return domain.AnonymousAuthor{ReviewerName: strings.TrimSpace(reviewerName)}, nil
		}
		return nil, err
	}

	name := u.DisplayName
	if name == "" {
		name = u.UserName
	}
	return domain.IdentifiedAuthor{UserID: u.ID, DisplayName: name}, nil
}

// SubmitReview validates and persists one review. All checks run before any
// write, so a rejected submission leaves no trace.
func (s *reviewService) SubmitReview(ctx context.Context, recipeID uint, req domain.SubmitReviewRequest, userID uint) (domain.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.ReviewResponse{}, domain.ErrRatingOutOfRange
	}

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" && body == "" {
		return domain.ReviewResponse{}, domain.ErrReviewContentRequired
	}

	exists, err := s.reviewRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.ReviewResponse{}, err
	}
	if !exists {
		return domain.ReviewResponse{}, domain.ErrRecipeNotFound
	}

	author, err := s.resolveAuthor(ctx, userID, req.ReviewerName)
	if err != nil {
		return domain.ReviewResponse{}, err
	}

	review := entities.Review{
		RecipeID:     recipeID,
		ReviewerName: author.Name(),
		Rating:       req.Rating,
		Title:        title,
		Body:         body,
		CreatedAt:    time.Now().UTC(),
	}

	if identified, ok := author.(domain.IdentifiedAuthor); ok {
		taken, err := s.reviewRepository.HasUserReview(ctx, recipeID, identified.UserID)
		if err != nil {
			return domain.ReviewResponse{}, err
		}
		if taken {
			return domain.ReviewResponse{}, domain.ErrDuplicateReview
		}
		review.UserID = &identified.UserID
	}

	if err := s.reviewRepository.CreateReview(ctx, &review); err != nil {
		// A concurrent submission can slip past the pre-check; the unique
		// index on (recipe_id, user_id) settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ReviewResponse{}, domain.ErrDuplicateReview
		}
		return domain.ReviewResponse{}, err
	}

	return domain.ReviewResponse{
		ID:           review.ID,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Title:        review.Title,
		Body:         review.Body,
		CreatedAt:    review.CreatedAt,
	}, nil
}
