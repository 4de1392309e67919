package recipe

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"nalastable/domain"
	"nalastable/entities"
	"nalastable/pkg/category"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Review{},
	))
	return db
}

type fakeS3 struct {
	lastKey string
}

func (f *fakeS3) UploadFile(key string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	f.lastKey = key
	return "https://cdn.test/" + folder + "/" + key, nil
}

func newTestService(t *testing.T) (RecipeService, *gorm.DB, *fakeS3) {
	t.Helper()
	db := newTestDB(t)
	s3 := &fakeS3{}
	svc := NewRecipeService(
		NewRecipeRepository(db),
		category.NewCategoryRepository(db),
		s3,
	)
	return svc, db, s3
}

func seedCategory(t *testing.T, db *gorm.DB, name string) entities.Category {
	t.Helper()
	c := entities.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedRecipe(t *testing.T, db *gorm.DB, title string, categoryID uint, prepTime int, createdAt time.Time) entities.Recipe {
	t.Helper()
	r := entities.Recipe{
		Title:        title,
		Instructions: "Cook it.",
		Servings:     2,
		PrepTime:     prepTime,
		CategoryID:   categoryID,
		Timestamp: entities.Timestamp{
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedLine(t *testing.T, db *gorm.DB, recipeID uint, ingredientName string, quantity float64) entities.Ingredient {
	t.Helper()
	var ingredient entities.Ingredient
	err := db.Where("name = ?", ingredientName).First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ingredient = entities.Ingredient{Name: ingredientName, Unit: "cup"}
		require.NoError(t, db.Create(&ingredient).Error)
	} else {
		require.NoError(t, err)
	}
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredient.ID,
		Quantity:     quantity,
	}).Error)
	return ingredient
}

func seedReview(t *testing.T, db *gorm.DB, recipeID uint, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Review{
		RecipeID:     recipeID,
		ReviewerName: "tester",
		Rating:       rating,
		Title:        "ok",
		CreatedAt:    time.Now().UTC(),
	}).Error)
}

func titles(summaries []domain.RecipeSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Title)
	}
	return out
}

func TestListRecipesNewestFirstByDefault(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedRecipe(t, db, "Oldest", c.ID, 10, base)
	seedRecipe(t, db, "Middle", c.ID, 10, base.Add(time.Hour))
	seedRecipe(t, db, "Newest", c.ID, 10, base.Add(2*time.Hour))

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(res.Recipes))

	// An unrecognized sort key falls back to the same ordering.
	res, err = svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Sort: "alphabetical"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(res.Recipes))
}

func TestListRecipesPagination(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedRecipe(t, db, "Dish", c.ID, 10, base.Add(time.Duration(i)*time.Minute))
	}

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Recipes, 10)

	res, err = svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Recipes, 5)
}

func TestListRecipesClampsOutOfRangePages(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedRecipe(t, db, "Dish", c.ID, 10, base.Add(time.Duration(i)*time.Minute))
	}

	// Past the end snaps to the last page, never an empty one.
	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Recipes, 5)

	res, err = svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Page: -4})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Recipes, 10)
}

func TestListRecipesEmptyResult(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")
	seedRecipe(t, db, "Spaghetti Carbonara", c.ID, 15, time.Now().UTC())

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Search: "zzz-no-such-dish", Page: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 0, res.TotalPages)
	assert.NotNil(t, res.Recipes)
	assert.Empty(t, res.Recipes)
}

func TestListRecipesSearchMatchesTitleCaseInsensitively(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")
	seedRecipe(t, db, "Spaghetti Carbonara", c.ID, 15, time.Now().UTC())
	seedRecipe(t, db, "Buttermilk Pancakes", c.ID, 10, time.Now().UTC())

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Search: "CARBO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Spaghetti Carbonara"}, titles(res.Recipes))

	// Surrounding whitespace is trimmed before matching.
	res, err = svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Search: "  carbonara  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Spaghetti Carbonara"}, titles(res.Recipes))
}

func TestListRecipesSearchMatchesIngredientNames(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Breakfast")
	muffins := seedRecipe(t, db, "Muffins", c.ID, 15, time.Now().UTC())
	seedRecipe(t, db, "Toast", c.ID, 5, time.Now().UTC())
	seedLine(t, db, muffins.ID, "Blueberries", 1)

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Search: "blueberr"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Muffins"}, titles(res.Recipes))
}

func TestListRecipesFiltersCombine(t *testing.T) {
	svc, db, _ := newTestService(t)
	dinner := seedCategory(t, db, "Dinner")
	dessert := seedCategory(t, db, "Dessert")

	now := time.Now().UTC()
	seedRecipe(t, db, "Quick Dinner", dinner.ID, 10, now)
	seedRecipe(t, db, "Slow Dinner", dinner.ID, 45, now.Add(time.Minute))
	seedRecipe(t, db, "Quick Dessert", dessert.ID, 10, now.Add(2*time.Minute))

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{
		CategoryID: dinner.ID,
		MaxPrep:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick Dinner"}, titles(res.Recipes))
}

func TestListRecipesSortByRating(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	now := time.Now().UTC()
	top := seedRecipe(t, db, "Top Rated", c.ID, 10, now)
	mid := seedRecipe(t, db, "Mid Rated", c.ID, 10, now.Add(time.Minute))
	seedRecipe(t, db, "Unrated", c.ID, 10, now.Add(2*time.Minute))

	seedReview(t, db, top.ID, 5)
	seedReview(t, db, top.ID, 4)
	seedReview(t, db, mid.ID, 3)

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Sort: domain.SortRating})
	require.NoError(t, err)
	assert.Equal(t, []string{"Top Rated", "Mid Rated", "Unrated"}, titles(res.Recipes))

	// A recipe without reviews averages to zero, not to a missing row.
	assert.InDelta(t, 4.5, res.Recipes[0].AvgRating, 0.001)
	assert.InDelta(t, 3.0, res.Recipes[1].AvgRating, 0.001)
	assert.Zero(t, res.Recipes[2].AvgRating)
}

func TestListRecipesSortByPrepTime(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	now := time.Now().UTC()
	seedRecipe(t, db, "Long", c.ID, 40, now)
	seedRecipe(t, db, "Short", c.ID, 5, now.Add(time.Minute))
	seedRecipe(t, db, "Medium", c.ID, 20, now.Add(2*time.Minute))

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Sort: domain.SortPrepTime})
	require.NoError(t, err)

	for i := 1; i < len(res.Recipes); i++ {
		assert.LessOrEqual(t, res.Recipes[i-1].PrepTime, res.Recipes[i].PrepTime)
	}
	assert.Equal(t, []string{"Short", "Medium", "Long"}, titles(res.Recipes))
}

func TestListRecipesRepeatable(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		seedRecipe(t, db, "Dish", c.ID, 10+i, base.Add(time.Duration(i)*time.Minute))
	}

	req := domain.ListRecipesRequest{Sort: domain.SortPrepTime, Page: 2}
	first, err := svc.ListRecipes(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.ListRecipes(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCreateRecipeReusesIngredientsCaseInsensitively(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dessert")
	require.NoError(t, db.Create(&entities.Ingredient{Name: "Flour", Unit: "cup"}).Error)

	detail, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:        "Banana Bread",
		Instructions: "Mix and bake.",
		Servings:     8,
		PrepTime:     15,
		CookTime:     60,
		CategoryID:   c.ID,
		Ingredients: []domain.IngredientInput{
			{Name: "flour", Quantity: 2},
			{Name: "  ", Quantity: 1},      // blank name, dropped
			{Name: "Sugar", Quantity: 0},   // non-positive quantity, dropped
			{Name: "FLOUR", Quantity: 1},   // resolves to the same ingredient, dropped
			{Name: "Bananas", Quantity: 3}, // new, created on the fly
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 2)
	assert.Equal(t, "Flour", detail.Ingredients[0].Name)
	assert.Equal(t, "Bananas", detail.Ingredients[1].Name)

	var flourCount int64
	require.NoError(t, db.Model(&entities.Ingredient{}).
		Where("LOWER(name) = ?", "flour").Count(&flourCount).Error)
	assert.EqualValues(t, 1, flourCount)
}

func TestCreateRecipeUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:        "Mystery Dish",
		Instructions: "Cook it.",
		Servings:     2,
		CategoryID:   999,
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateRecipeDetectsConcurrentEdit(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:        "Chicken Curry",
		Instructions: "Simmer.",
		Servings:     4,
		PrepTime:     20,
		CookTime:     40,
		CategoryID:   c.ID,
	})
	require.NoError(t, err)

	stamp := created.UpdatedAt
	update := domain.UpdateRecipeRequest{
		Title:        "Chicken Curry",
		Instructions: "Simmer longer.",
		Servings:     4,
		PrepTime:     20,
		CookTime:     45,
		CategoryID:   c.ID,
		UpdatedAt:    stamp,
	}
	require.NoError(t, svc.UpdateRecipe(context.Background(), created.ID, update))

	// Replaying the edit with the stale stamp is rejected.
	err = svc.UpdateRecipe(context.Background(), created.ID, update)
	assert.ErrorIs(t, err, domain.ErrRecipeEditConflict)

	err = svc.UpdateRecipe(context.Background(), 999, update)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateRecipeRewritesIngredientLines(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:        "Stir Fry",
		Instructions: "Fry.",
		Servings:     2,
		CategoryID:   c.ID,
		Ingredients: []domain.IngredientInput{
			{Name: "Rice", Quantity: 1},
			{Name: "Soy Sauce", Quantity: 2},
		},
	})
	require.NoError(t, err)

	err = svc.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Title:        "Stir Fry",
		Instructions: "Fry.",
		Servings:     2,
		CategoryID:   c.ID,
		Ingredients: []domain.IngredientInput{
			{Name: "Rice", Quantity: 1.5},
		},
		UpdatedAt: created.UpdatedAt,
	})
	require.NoError(t, err)

	detail, err := svc.GetRecipeDetail(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Rice", detail.Ingredients[0].Name)
	assert.InDelta(t, 1.5, detail.Ingredients[0].Quantity, 0.001)
}

func TestDeleteRecipeLeavesSharedRows(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")
	r := seedRecipe(t, db, "Beef Stew", c.ID, 25, time.Now().UTC())
	ingredient := seedLine(t, db, r.ID, "Beef", 2)

	reviewer := entities.User{UserName: "sam", Email: "sam@example.com", DisplayName: "Sam"}
	require.NoError(t, db.Create(&reviewer).Error)
	require.NoError(t, db.Create(&entities.Review{
		RecipeID:     r.ID,
		UserID:       &reviewer.ID,
		ReviewerName: reviewer.DisplayName,
		Rating:       5,
		Title:        "Hearty",
		CreatedAt:    time.Now().UTC(),
	}).Error)

	require.NoError(t, svc.DeleteRecipe(context.Background(), r.ID))

	_, err := svc.GetRecipeDetail(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var lines, reviews, ingredients, users int64
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", r.ID).Count(&lines).Error)
	require.NoError(t, db.Model(&entities.Review{}).Where("recipe_id = ?", r.ID).Count(&reviews).Error)
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("id = ?", ingredient.ID).Count(&ingredients).Error)
	require.NoError(t, db.Model(&entities.User{}).Where("id = ?", reviewer.ID).Count(&users).Error)

	assert.Zero(t, lines)
	assert.Zero(t, reviews)
	assert.EqualValues(t, 1, ingredients)
	assert.EqualValues(t, 1, users)
}

func TestDeleteIngredientStillReferenced(t *testing.T) {
	svc, db, _ := newTestService(t)
	c := seedCategory(t, db, "Dinner")
	r := seedRecipe(t, db, "Carbonara", c.ID, 15, time.Now().UTC())
	used := seedLine(t, db, r.ID, "Pasta", 2)

	unused := entities.Ingredient{Name: "Saffron", Unit: "tsp"}
	require.NoError(t, db.Create(&unused).Error)

	err := svc.DeleteIngredient(context.Background(), used.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)

	require.NoError(t, svc.DeleteIngredient(context.Background(), unused.ID))

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("id = ?", unused.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadRecipeImage(t *testing.T) {
	svc, db, s3 := newTestService(t)
	c := seedCategory(t, db, "Dinner")
	r := seedRecipe(t, db, "Tacos", c.ID, 20, time.Now().UTC())

	file := &multipart.FileHeader{Filename: "tacos.jpg"}
	url, err := svc.UploadRecipeImage(context.Background(), r.ID, file)
	require.NoError(t, err)
	assert.Contains(t, url, "https://cdn.test/recipes/")
	assert.NotEmpty(t, s3.lastKey)

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, r.ID).Error)
	assert.Equal(t, url, stored.ImageURL)

	_, err = svc.UploadRecipeImage(context.Background(), 999, file)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
