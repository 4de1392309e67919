package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"nalastable/domain"
	"nalastable/entities"
	"nalastable/internal/utils/storage"
	"nalastable/pkg/category"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed number of summaries per listing page.
const PageSize = 10

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.ListRecipesResponse, error)
		GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest) error
		DeleteRecipe(ctx context.Context, id uint) error
		UploadRecipeImage(ctx context.Context, id uint, image *multipart.FileHeader) (string, error)
		DeleteIngredient(ctx context.Context, id uint) error
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		categoryRepository category.CategoryRepository
		s3                 storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, categoryRepository category.CategoryRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:   recipeRepository,
		categoryRepository: categoryRepository,
		s3:                 s3,
	}
}

// normalize defensively cleans the listing criteria: the search term is
// trimmed, an unknown sort key falls back to newest, and a non-positive page
// becomes 1. Nothing here ever rejects a request.
func normalize(req domain.ListRecipesRequest) domain.ListRecipesRequest {
	req.Search = strings.TrimSpace(req.Search)

	switch req.Sort {
	case domain.SortNewest, domain.SortRating, domain.SortPrepTime:
	default:
		req.Sort = domain.SortNewest
	}

	if req.Page < 1 {
		req.Page = 1
	}
	return req
}

func (s *recipeService) ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.ListRecipesResponse, error) {
	req = normalize(req)

	summaries, page, totalPages, err := s.recipeRepository.ListSummaries(ctx, req, PageSize)
	if err != nil {
		return domain.ListRecipesResponse{}, err
	}

	options, err := s.categoryRepository.GetCategoryOptions(ctx)
	if err != nil {
		return domain.ListRecipesResponse{}, err
	}

	if summaries == nil {
		summaries = []domain.RecipeSummary{}
	}

	return domain.ListRecipesResponse{
		Recipes:         summaries,
		Page:            page,
		TotalPages:      totalPages,
		CategoryOptions: options,
	}, nil
}

func toDetail(recipe *entities.Recipe) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		Servings:     recipe.Servings,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		ImageURL:     recipe.ImageURL,
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
		Ingredients:  []domain.IngredientLine{},
		Reviews:      []domain.ReviewResponse{},
	}
	if recipe.Category != nil {
		detail.CategoryName = recipe.Category.Name
	}

	for _, ri := range recipe.Ingredients {
		line := domain.IngredientLine{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.UnitOverride,
			Notes:        ri.Notes,
		}
		if ri.Ingredient != nil {
			line.Name = ri.Ingredient.Name
			if line.Unit == "" {
				line.Unit = ri.Ingredient.Unit
			}
		}
		detail.Ingredients = append(detail.Ingredients, line)
	}

	// Reviews arrive preloaded most-recent-first.
	total := 0
	for _, review := range recipe.Reviews {
		total += review.Rating
		detail.Reviews = append(detail.Reviews, domain.ReviewResponse{
			ID:           review.ID,
			ReviewerName: review.ReviewerName,
			Rating:       review.Rating,
			Title:        review.Title,
			Body:         review.Body,
			CreatedAt:    review.CreatedAt,
		})
	}
	if len(recipe.Reviews) > 0 {
		detail.AvgRating = float64(total) / float64(len(recipe.Reviews))
	}

	return detail
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}
	return toDetail(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.RecipeDetail, error) {
	if _, err := s.categoryRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrCategoryNotFound
		}
		return domain.RecipeDetail{}, err
	}

	recipe := entities.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		ImageURL:     req.ImageURL,
		CategoryID:   req.CategoryID,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, req.Ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID)
}

// UpdateRecipe applies an edit with an optimistic concurrency check: the
// caller sends back the UpdatedAt stamp it last saw, and a mismatch means
// someone else saved in between.
func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !req.UpdatedAt.Equal(recipe.UpdatedAt) {
		return domain.ErrRecipeEditConflict
	}

	if _, err := s.categoryRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}

	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = req.Description
	recipe.Instructions = req.Instructions
	recipe.Servings = req.Servings
	recipe.PrepTime = req.PrepTime
	recipe.CookTime = req.CookTime
	recipe.ImageURL = req.ImageURL
	recipe.CategoryID = req.CategoryID

	// Detach preloaded associations so Save only writes the recipe row.
	recipe.Category = nil
	recipe.Ingredients = nil
	recipe.Reviews = nil

	return s.recipeRepository.UpdateRecipe(ctx, recipe, req.Ingredients)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, id uint, image *multipart.FileHeader) (string, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	key := fmt.Sprintf("recipe-%s%s", uuid.New().String(), filepath.Ext(image.Filename))
	objectURL, err := s.s3.UploadFile(key, image, "recipes", storage.AllowImage...)
	if err != nil {
		return "", err
	}

	if err := s.recipeRepository.SaveImageURL(ctx, id, objectURL); err != nil {
		return "", err
	}
	return objectURL, nil
}

func (s *recipeService) DeleteIngredient(ctx context.Context, id uint) error {
	return s.recipeRepository.DeleteIngredient(ctx, id)
}
