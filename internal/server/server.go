package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/config"
	"github.com/pantrybase/backend/internal/api"
	"github.com/pantrybase/backend/internal/middleware"
	"github.com/pantrybase/backend/internal/router"
	"github.com/pantrybase/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
}

// New wires services and handlers into a server instance. redisClient and
// s3cfg are optional; without them logout revocation, login rate limiting
// and photo upload degrade gracefully.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret, redisClient)
	profileService := service.NewProfileService(db)
	allergenService := service.NewAllergenService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db)
	pantryService := service.NewPantryService(db)

	var imageService *service.ImageService
	if s3cfg != nil {
		imageService = service.NewImageService(s3cfg)
	}

	var loginLimiter *middleware.RateLimiter
	if redisClient != nil {
		loginLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     20,
			KeyPrefix: "ratelimit:auth",
		})
	}

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Profile:    api.NewProfileHandler(profileService),
		Allergen:   api.NewAllergenHandler(allergenService),
		Ingredient: api.NewIngredientHandler(ingredientService),
		Recipe:     api.NewRecipeHandler(recipeService, profileService, imageService),
		Pantry:     api.NewPantryHandler(pantryService),
		Admin:      api.NewAdminHandler(db, allergenService),
	}

	engine := router.SetupRouter(handlers, authService, loginLimiter)

	return &Server{cfg: cfg, engine: engine}
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
