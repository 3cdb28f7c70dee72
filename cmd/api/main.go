package main

import (
	"context"
	"log"

	"github.com/leftovercook/backend/config"
	"github.com/leftovercook/backend/internal/api"
	"github.com/leftovercook/backend/internal/database"
	"github.com/leftovercook/backend/internal/middleware"
	"github.com/leftovercook/backend/internal/router"
	"github.com/leftovercook/backend/internal/server"
	"github.com/leftovercook/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: sessions fall back to process memory and the
	// generation endpoints run unthrottled without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	llmService, err := service.NewLLMService()
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	prefService := service.NewPreferenceService(db)
	sessionService := service.NewSessionService(llmService, redisClient)
	ledgerService := service.NewLedgerService(db)

	var imageService service.ImageGenerator
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Image generation disabled, S3 unavailable: %v", err)
	} else if svc, err := service.NewImageService(s3Cfg); err != nil {
		log.Printf("Image generation disabled: %v", err)
	} else {
		imageService = svc
	}

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService),
		api.NewPreferenceHandler(prefService),
		api.NewRecipeHandler(sessionService, llmService, imageService),
		api.NewLedgerHandler(ledgerService),
		authService,
		rateLimiter,
	)

	srv := server.NewServer(engine)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
