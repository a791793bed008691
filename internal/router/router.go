package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/backend/internal/api"
	"github.com/pantrybase/backend/internal/middleware"
)

// Handlers bundles the API handlers the router wires up.
type Handlers struct {
	Auth       *api.AuthHandler
	Profile    *api.ProfileHandler
	Allergen   *api.AllergenHandler
	Ingredient *api.IngredientHandler
	Recipe     *api.RecipeHandler
	Pantry     *api.PantryHandler
	Admin      *api.AdminHandler
}

// SetupRouter configures the application routes. loginLimiter may be nil
// when redis is unavailable (tests).
func SetupRouter(h Handlers, validator middleware.TokenValidator, loginLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	if loginLimiter != nil {
		auth.Use(loginLimiter.Middleware())
	}
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", middleware.AuthMiddleware(validator), h.Auth.Logout)
	}

	// Public catalog reads. Recipe listing personalizes its allergen
	// exclusion for logged-in callers.
	v1.GET("/allergens", h.Allergen.ListAllergens)
	v1.GET("/allergens/:id", h.Allergen.GetAllergen)
	v1.GET("/ingredients", h.Ingredient.ListIngredients)
	v1.GET("/ingredients/:id", h.Ingredient.GetIngredient)
	v1.GET("/recipes", middleware.OptionalAuth(validator), h.Recipe.ListRecipes)
	v1.GET("/recipes/:id", h.Recipe.GetRecipe)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
			profile.PUT("/allergens", h.Profile.UpdateAllergens)
		}

		ingredients := protected.Group("/ingredients")
		{
			ingredients.POST("", h.Ingredient.CreateIngredient)
			ingredients.PUT("/:id", h.Ingredient.UpdateIngredient)
			ingredients.DELETE("/:id", h.Ingredient.DeleteIngredient)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.POST("", h.Recipe.CreateRecipe)
			recipes.GET("/suggest", h.Recipe.SuggestRecipes)
			recipes.PUT("/:id", h.Recipe.UpdateRecipe)
			recipes.DELETE("/:id", h.Recipe.DeleteRecipe)
			recipes.POST("/:id/ingredients", h.Recipe.AddRecipeIngredient)
			recipes.DELETE("/:id/ingredients/:ingredient_id", h.Recipe.RemoveRecipeIngredient)
			recipes.POST("/:id/image", h.Recipe.UploadRecipeImage)
		}

		pantry := protected.Group("/pantry")
		{
			pantry.GET("", h.Pantry.ListPantry)
			pantry.POST("", h.Pantry.AddPantryItem)
			pantry.DELETE("/:ingredient_id", h.Pantry.RemovePantryItem)
		}
	}

	// Superuser surface
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminRequired())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/allergens", h.Admin.CreateAllergen)
	}

	return router
}
