package recipe

import (
	"context"
	"errors"
	"strings"

	"nalastable/domain"
	"nalastable/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		ListSummaries(ctx context.Context, q domain.ListRecipesRequest, pageSize int) ([]domain.RecipeSummary, int, int, error)
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []domain.IngredientInput) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []domain.IngredientInput) error
		DeleteRecipe(ctx context.Context, id uint) error
		SaveImageURL(ctx context.Context, id uint, imageURL string) error
		DeleteIngredient(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyFilters ANDs the supplied listing criteria onto the query. The search
// term matches the recipe title or any attached ingredient name, both as
// case-insensitive substrings.
func applyFilters(db *gorm.DB, q domain.ListRecipesRequest) *gorm.DB {
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		db = db.Where(
			"LOWER(recipes.title) LIKE ? OR EXISTS ("+
				"SELECT 1 FROM recipe_ingredients ri "+
				"JOIN ingredients ing ON ing.id = ri.ingredient_id "+
				"WHERE ri.recipe_id = recipes.id AND LOWER(ing.name) LIKE ?)",
			pattern, pattern,
		)
	}
	if q.CategoryID != 0 {
		db = db.Where("recipes.category_id = ?", q.CategoryID)
	}
	if q.MaxPrep > 0 {
		db = db.Where("recipes.prep_time <= ?", q.MaxPrep)
	}
	return db
}

// orderClause maps a sort key to its ORDER BY expression. Every ordering
// carries the recipe id as a stable tiebreaker so pagination stays
// reproducible; newest breaks timestamp ties toward later inserts.
func orderClause(sort string) string {
	switch sort {
	case domain.SortRating:
		return "avg_rating DESC, recipes.id ASC"
	case domain.SortPrepTime:
		return "recipes.prep_time ASC, recipes.id ASC"
	default:
		return "recipes.created_at DESC, recipes.id DESC"
	}
}

// ListSummaries returns one page of recipe summaries plus the clamped page
// number and the total page count. Count and fetch run inside a single
// transaction so both observe the same snapshot of the filtered set.
func (r *recipeRepository) ListSummaries(ctx context.Context, q domain.ListRecipesRequest, pageSize int) ([]domain.RecipeSummary, int, int, error) {
	var (
		summaries  []domain.RecipeSummary
		page       int
		totalPages int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := applyFilters(tx.Model(&entities.Recipe{}), q).Count(&count).Error; err != nil {
			return err
		}

		totalPages = int((count + int64(pageSize) - 1) / int64(pageSize))

		// Out-of-range pages snap to the nearest valid page instead of
		// producing an empty result.
		page = q.Page
		if page < 1 {
			page = 1
		}
		maxPage := totalPages
		if maxPage < 1 {
			maxPage = 1
		}
		if page > maxPage {
			page = maxPage
		}

		offset := (page - 1) * pageSize

		return applyFilters(tx.Model(&entities.Recipe{}), q).
			Select("recipes.id, recipes.title, categories.name AS category_name, "+
				"recipes.prep_time, recipes.cook_time, recipes.image_url, "+
				"COALESCE(AVG(reviews.rating), 0) AS avg_rating").
			Joins("JOIN categories ON categories.id = recipes.category_id").
			Joins("LEFT JOIN reviews ON reviews.recipe_id = recipes.id").
			Group("recipes.id, recipes.title, categories.name, recipes.prep_time, " +
				"recipes.cook_time, recipes.image_url, recipes.created_at").
			Order(orderClause(q.Sort)).
			Offset(offset).
			Limit(pageSize).
			Scan(&summaries).Error
	})
	if err != nil {
		return nil, 0, 0, err
	}

	return summaries, page, totalPages, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC, reviews.id DESC")
		}).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// resolveIngredient finds an ingredient by name case-insensitively or creates
// it with the supplied default unit.
func resolveIngredient(tx *gorm.DB, name, unit string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient = entities.Ingredient{Name: name, Unit: unit}
	if err := tx.Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// writeLines resolves and inserts the ingredient lines of a recipe. Blank
// names and non-positive quantities are dropped, and a second line resolving
// to an already written ingredient is skipped since the composite key allows
// only one line per ingredient.
func writeLines(tx *gorm.DB, recipeID uint, lines []domain.IngredientInput) error {
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" || line.Quantity <= 0 {
			continue
		}

		ingredient, err := resolveIngredient(tx, name, line.Unit)
		if err != nil {
			return err
		}
		if seen[ingredient.ID] {
			continue
		}
		seen[ingredient.ID] = true

		ri := entities.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredient.ID,
			Quantity:     line.Quantity,
			UnitOverride: line.Unit,
			Notes:        line.Notes,
		}
		if err := tx.Create(&ri).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []domain.IngredientInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return writeLines(tx, recipe.ID, lines)
	})
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []domain.IngredientInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return writeLines(tx, recipe.ID, lines)
	})
}

// DeleteRecipe removes a recipe together with its ingredient lines and
// reviews. Referenced ingredient and user rows stay untouched.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) SaveImageURL(ctx context.Context, id uint, imageURL string) error {
	return r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

// DeleteIngredient rejects deletion while any recipe still references the
// ingredient.
func (r *recipeRepository) DeleteIngredient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entities.RecipeIngredient{}).
			Where("ingredient_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrIngredientInUse
		}
		return tx.Where("id = ?", id).Delete(&entities.Ingredient{}).Error
	})
}
