package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes    = "success get recipes"
	MessageSuccessGetRecipe     = "success get recipe detail"
	MessageSuccessCreateRecipe  = "recipe created successfully"
	MessageSuccessUpdateRecipe  = "recipe updated successfully"
	MessageSuccessDeleteRecipe  = "recipe deleted successfully"
	MessageSuccessUploadImage   = "recipe image uploaded successfully"

	MessageFailedGetRecipes   = "failed to get recipes"
	MessageFailedGetRecipe    = "failed to get recipe detail"
	MessageFailedCreateRecipe = "failed to create recipe"
	MessageFailedUpdateRecipe = "failed to update recipe"
	MessageFailedDeleteRecipe = "failed to delete recipe"
	MessageFailedUploadImage  = "failed to upload recipe image"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeEditConflict = errors.New("recipe was modified by someone else")
	ErrIngredientInUse    = errors.New("ingredient is still referenced by recipes")
)

// Sort orders accepted by the listing query. Anything else falls back to
// SortNewest.
const (
	SortNewest   = "newest"
	SortRating   = "rating"
	SortPrepTime = "preptime"
)

type (
	// ListRecipesRequest carries the normalized listing criteria. Zero values
	// mean "filter absent"; the service trims the search term and clamps the
	// page, so no combination of inputs is rejected.
	ListRecipesRequest struct {
		Search     string `query:"search"`
		CategoryID uint   `query:"categoryId"`
		MaxPrep    int    `query:"maxPrep"`
		Sort       string `query:"sort"`
		Page       int    `query:"page"`
	}

	// RecipeSummary is the lightweight listing projection, as distinct from
	// the full recipe entity.
	RecipeSummary struct {
		ID           uint    `json:"id"`
		Title        string  `json:"title"`
		CategoryName string  `json:"category_name"`
		PrepTime     int     `json:"prep_time"`
		CookTime     int     `json:"cook_time"`
		ImageURL     string  `json:"image_url,omitempty"`
		AvgRating    float64 `json:"avg_rating"`
	}

	ListRecipesResponse struct {
		Recipes         []RecipeSummary  `json:"recipes"`
		Page            int              `json:"page"`
		TotalPages      int              `json:"total_pages"`
		CategoryOptions []CategoryOption `json:"category_options"`
	}

	IngredientLine struct {
		IngredientID uint    `json:"ingredient_id"`
		Name         string  `json:"name"`
		Quantity     float64 `json:"quantity"`
		Unit         string  `json:"unit,omitempty"`
		Notes        string  `json:"notes,omitempty"`
	}

	RecipeDetail struct {
		ID           uint             `json:"id"`
		Title        string           `json:"title"`
		Description  string           `json:"description,omitempty"`
		Instructions string           `json:"instructions"`
		Servings     int              `json:"servings"`
		PrepTime     int              `json:"prep_time"`
		CookTime     int              `json:"cook_time"`
		ImageURL     string           `json:"image_url,omitempty"`
		CategoryName string           `json:"category_name"`
		AvgRating    float64          `json:"avg_rating"`
		CreatedAt    time.Time        `json:"created_at"`
		UpdatedAt    time.Time        `json:"updated_at"`
		Ingredients  []IngredientLine `json:"ingredients"`
		Reviews      []ReviewResponse `json:"reviews"`
	}

	IngredientInput struct {
		Name     string  `json:"name"`
		Unit     string  `json:"unit,omitempty"`
		Quantity float64 `json:"quantity" validate:"gte=0,lte=10000"`
		Notes    string  `json:"notes,omitempty"`
	}

	CreateRecipeRequest struct {
		Title        string            `json:"title" validate:"required,max=120"`
		Description  string            `json:"description" validate:"max=4000"`
		Instructions string            `json:"instructions" validate:"required"`
		Servings     int               `json:"servings" validate:"gte=1,lte=50"`
		PrepTime     int               `json:"prep_time" validate:"gte=0,lte=600"`
		CookTime     int               `json:"cook_time" validate:"gte=0,lte=600"`
		CategoryID   uint              `json:"category_id" validate:"required"`
		ImageURL     string            `json:"image_url" validate:"omitempty,url"`
		Ingredients  []IngredientInput `json:"ingredients" validate:"dive"`
	}

	// UpdateRecipeRequest carries the UpdatedAt stamp the client last saw so
	// concurrent edits can be detected instead of silently overwritten.
	UpdateRecipeRequest struct {
		Title        string            `json:"title" validate:"required,max=120"`
		Description  string            `json:"description" validate:"max=4000"`
		Instructions string            `json:"instructions" validate:"required"`
		Servings     int               `json:"servings" validate:"gte=1,lte=50"`
		PrepTime     int               `json:"prep_time" validate:"gte=0,lte=600"`
		CookTime     int               `json:"cook_time" validate:"gte=0,lte=600"`
		CategoryID   uint              `json:"category_id" validate:"required"`
		ImageURL     string            `json:"image_url" validate:"omitempty,url"`
		Ingredients  []IngredientInput `json:"ingredients" validate:"dive"`
		UpdatedAt    time.Time         `json:"updated_at"`
	}
)
