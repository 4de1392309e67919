package review

import (
	"context"
	"testing"
	"time"

	"nalastable/domain"
	"nalastable/entities"
	"nalastable/pkg/user"

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

func newTestService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReviewService(NewReviewRepository(db), user.NewUserRepository(db))
	return svc, db
}

func seedRecipe(t *testing.T, db *gorm.DB) entities.Recipe {
	t.Helper()
	c := entities.Category{Name: "Dinner"}
	require.NoError(t, db.Create(&c).Error)
	r := entities.Recipe{
		Title:        "Spaghetti Carbonara",
		Instructions: "Cook it.",
		Servings:     4,
		CategoryID:   c.ID,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, userName, displayName string) entities.User {
	t.Helper()
	u := entities.User{
		UserName:    userName,
		Email:       userName + "@example.com",
		DisplayName: displayName,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestSubmitReviewRejectsBadRating(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
			Rating: rating,
			Body:   "fine",
		}, 0)
		assert.ErrorIs(t, err, domain.ErrRatingOutOfRange, "rating %d", rating)
	}

	var count int64
	require.NoError(t, db.Model(&entities.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitReviewRequiresTitleOrBody(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)

	_, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 4,
		Title:  "   ",
		Body:   "\t",
	}, 0)
	assert.ErrorIs(t, err, domain.ErrReviewContentRequired)

	// Body alone satisfies the content rule.
	res, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 4,
		Body:   "Solid weeknight dish.",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Solid weeknight dish.", res.Body)
	assert.Empty(t, res.Title)
}

func TestSubmitReviewUnknownRecipe(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubmitReview(context.Background(), 999, domain.SubmitReviewRequest{
		Rating: 5,
		Body:   "great",
	}, 0)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestSubmitReviewAnonymousNames(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)

	res, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 5,
		Body:   "great",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousReviewerName, res.ReviewerName)

	res, err = svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating:       4,
		Body:         "also great",
		ReviewerName: "  Maya  ",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Maya", res.ReviewerName)

	var stored entities.Review
	require.NoError(t, db.First(&stored, res.ID).Error)
	assert.Nil(t, stored.UserID)
}

func TestSubmitReviewMultipleAnonymousAllowed(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
			Rating: 4,
			Body:   "tasty",
		}, 0)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&entities.Review{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSubmitReviewIdentifiedUsesDisplayName(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)
	u := seedUser(t, db, "nala", "Nala")

	res, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating:       5,
		Title:        "Authentic taste!",
		ReviewerName: "ignored for signed-in users",
	}, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nala", res.ReviewerName)

	var stored entities.Review
	require.NoError(t, db.First(&stored, res.ID).Error)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, u.ID, *stored.UserID)
}

func TestSubmitReviewIdentifiedFallsBackToUserName(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)
	u := seedUser(t, db, "chef_ari", "")

	res, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 4,
		Body:   "nice",
	}, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef_ari", res.ReviewerName)
}

func TestSubmitReviewOnePerUserPerRecipe(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)
	u := seedUser(t, db, "sam", "Sam")

	_, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 5,
		Body:   "great",
	}, u.ID)
	require.NoError(t, err)

	_, err = svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 3,
		Body:   "changed my mind",
	}, u.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)

	var count int64
	require.NoError(t, db.Model(&entities.Review{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReviewStaleTokenFallsBackToAnonymous(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRecipe(t, db)

	// Token points at an account that no longer exists.
	res, err := svc.SubmitReview(context.Background(), r.ID, domain.SubmitReviewRequest{
		Rating: 4,
		Body:   "still works",
	}, 999)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousReviewerName, res.ReviewerName)

	var stored entities.Review
	require.NoError(t, db.First(&stored, res.ID).Error)
	assert.Nil(t, stored.UserID)
}
