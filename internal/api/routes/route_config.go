package routes

import (
	"nalastable/internal/api/handlers"
	"nalastable/internal/middleware"
	"nalastable/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	RecipeHandler   handlers.RecipeHandler
	ReviewHandler   handlers.ReviewHandler
	CategoryHandler handlers.CategoryHandler
	UserHandler     handlers.UserHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Categories()
	c.Users()
	c.GuestRoute()
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("", c.RecipeHandler.ListRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
		recipes.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/image", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UploadRecipeImage)

		// Anonymous reviews are allowed, auth only attaches identity.
		recipes.Post("/:id/reviews", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.ReviewHandler.SubmitReview)
	}

	c.App.Delete("/api/v1/ingredients/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteIngredient)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	{
		categories.Get("", c.CategoryHandler.GetCategories)
		categories.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CategoryHandler.CreateCategory)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users")
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		users.Get("/verify", c.UserHandler.VerifyEmail)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
