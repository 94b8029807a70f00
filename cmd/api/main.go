package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graduate-showcase-backend/config"
	_ "graduate-showcase-backend/docs" // Important for Swagger
	v1 "graduate-showcase-backend/internal/delivery/http/v1"
	"graduate-showcase-backend/internal/repository/postgres"
	"graduate-showcase-backend/internal/usecase"
	"graduate-showcase-backend/pkg/auth"
	"graduate-showcase-backend/pkg/database"
	"graduate-showcase-backend/pkg/logger"
	"graduate-showcase-backend/pkg/redis"
	"graduate-showcase-backend/pkg/storage"
	"graduate-showcase-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Graduate Showcase API
// @version         1.0
// @description     Backend for the graduate profile directory using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting graduate showcase backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and caching degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	defer redis.Close()
	cache := redis.Client()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Setup Image Storage (optional)
	var uploader *storage.Uploader
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		uploader, err = storage.NewUploader(ctx, storage.Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		cancel()
		if err != nil {
			logger.Log.Warn("S3 client setup failed, image uploads disabled", "error", err)
			uploader = nil
		}
	} else {
		logger.Log.Warn("S3 credentials not configured, image uploads disabled")
	}

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	cacheTTL := time.Duration(cfg.DirectoryCacheTTLSeconds) * time.Second
	authUC := usecase.NewAuthUsecase(userRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate, cache)
	directoryUC := usecase.NewDirectoryUsecase(profileRepo, cache, cacheTTL)
	moderationUC := usecase.NewModerationUsecase(profileRepo, cache)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		ProfileUC:    profileUC,
		DirectoryUC:  directoryUC,
		ModerationUC: moderationUC,
		Uploader:     uploader,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
