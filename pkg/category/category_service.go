package category

import (
	"context"
	"errors"
	"strings"

	"nalastable/domain"
	"nalastable/entities"

	"gorm.io/gorm"
)

type (
	CategoryService interface {
		GetCategoryOptions(ctx context.Context) ([]domain.CategoryOption, error)
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*entities.Category, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) GetCategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	return s.categoryRepository.GetCategoryOptions(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*entities.Category, error) {
	name := strings.TrimSpace(req.Name)

	_, err := s.categoryRepository.GetCategoryByName(ctx, name)
	if err == nil {
		return nil, domain.ErrDuplicateCategory
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := entities.Category{
		Name:        name,
		Description: req.Description,
	}
	if err := s.categoryRepository.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
