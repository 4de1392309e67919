package category

import (
	"context"

	"nalastable/domain"
	"nalastable/entities"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		GetCategoryOptions(ctx context.Context) ([]domain.CategoryOption, error)
		GetCategoryByID(ctx context.Context, id uint) (*entities.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*entities.Category, error)
		CreateCategory(ctx context.Context, category *entities.Category) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetCategoryOptions returns the id/name pairs for the listing filter
// control, ordered by name.
func (r *categoryRepository) GetCategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	var options []domain.CategoryOption
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Select("id, name").
		Order("name asc").
		Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
