package v1

import (
	"net/http"
	"time"

	"graduate-showcase-backend/config"
	"graduate-showcase-backend/internal/delivery/http/middleware"
	"graduate-showcase-backend/internal/delivery/http/response"
	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/pkg/auth"
	"graduate-showcase-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	ProfileUC    domain.ProfileUsecase
	DirectoryUC  domain.DirectoryUsecase
	ModerationUC domain.ModerationUsecase
	Uploader     *storage.Uploader
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes
	NewGraduateHandler(v1, deps.DirectoryUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, deps.Config)

		uploadLimiter := middleware.RateLimit(middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))
		NewProfileHandler(protected, deps.ProfileUC, deps.Uploader, uploadLimiter)

		NewAdminHandler(protected, deps.ModerationUC)
	}

	return r
}
