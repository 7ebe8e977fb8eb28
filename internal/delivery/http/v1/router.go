package v1

import (
	"net/http"
	"time"

	"designhire-backend/config"
	"designhire-backend/internal/delivery/http/middleware"
	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/auth"
	"designhire-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	UserUC        domain.UserUsecase
	TokenManager  *auth.TokenManager
	Uploader      *storage.Uploader
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.CSRFMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes carry identity when a valid token is present, so
	// job listings can exclude jobs the viewer already applied to.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.TokenManager))

	// Auth endpoints get the strict per-IP limiter
	authLimited := v1.Group("")
	authLimited.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window)))
	NewAuthHandler(authLimited, deps.AuthUC, deps.Config)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenManager))

	NewJobHandler(public, protected, deps.JobUC)
	NewApplicationHandler(protected, deps.ApplicationUC)
	NewUserHandler(public, protected, deps.UserUC, deps.Uploader, deps.Config)

	return r
}
