package review

import (
	"context"

	"nalastable/entities"

	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		RecipeExists(ctx context.Context, recipeID uint) (bool, error)
		HasUserReview(ctx context.Context, recipeID, userID uint) (bool, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) RecipeExists(ctx context.Context, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) HasUserReview(ctx context.Context, recipeID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
