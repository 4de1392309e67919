package config

import (
	"os"
	"time"

	"nalastable/internal/api/handlers"
	"nalastable/internal/api/routes"
	"nalastable/internal/middleware"
	"nalastable/internal/utils"
	"nalastable/internal/utils/storage"
	"nalastable/pkg/category"
	"nalastable/pkg/jwt"
	"nalastable/pkg/recipe"
	"nalastable/pkg/review"
	"nalastable/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	reviewRepository := review.NewReviewRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	categoryService := category.NewCategoryService(categoryRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, categoryRepository, s3)
	reviewService := review.NewReviewService(reviewRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		RecipeHandler:   recipeHandler,
		ReviewHandler:   reviewHandler,
		CategoryHandler: categoryHandler,
		UserHandler:     userHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
