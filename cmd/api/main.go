package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"designhire-backend/config"
	_ "designhire-backend/docs" // Important for Swagger
	v1 "designhire-backend/internal/delivery/http/v1"
	"designhire-backend/internal/repository/postgres"
	"designhire-backend/internal/usecase"
	"designhire-backend/pkg/auth"
	"designhire-backend/pkg/database"
	"designhire-backend/pkg/email"
	"designhire-backend/pkg/logger"
	"designhire-backend/pkg/redis"
	"designhire-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           DesignHire API
// @version         1.0
// @description     Job board backend for designers using Clean Architecture.
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
	logger.Log.Info("Starting designhire backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback if absent)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Object Storage (avatars and resumes)
	var uploader *storage.Uploader
	storageCfg := storage.NewClientConfigFromEnv()
	if storageCfg.IsConfigured() {
		s3Client, err := storage.NewS3Client(context.Background(), storageCfg)
		if err != nil {
			logger.Log.Error("Failed to create storage client", "error", err)
			os.Exit(1)
		}
		uploader = storage.NewUploader(s3Client, storageCfg)
	} else {
		logger.Log.Warn("Object storage not configured - profile uploads will be unavailable")
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - password reset will be unavailable")
	}

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(dbPool)

	// 8. Setup UseCases
	validate := validator.New()
	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	authUC := usecase.NewAuthUsecase(userRepo, tokenManager, emailService, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, applicationRepo, userRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	userUC := usecase.NewUserUsecase(userRepo, jobRepo, applicationRepo, savedJobRepo)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		UserUC:        userUC,
		TokenManager:  tokenManager,
		Uploader:      uploader,
		Config:        cfg,
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
