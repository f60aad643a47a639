package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/config"
	_ "github.com/abhayy08/AlumniConnect-Platform-Backend/docs" // Important for Swagger
	v1 "github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/v1"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/repository/postgres"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/usecase"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/auth"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/database"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/logger"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/redis"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/storage"
)

// @title           Alumni Network API
// @version         1.0
// @description     Backend for the alumni networking platform.
// @host            localhost:8080
// @BasePath        /api
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
	logger.Log.Info("Starting alumni network backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Image Store
	imageStore, err := storage.NewImageStore(context.Background(), storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to configure image store", "error", err)
		os.Exit(1)
	}

	// 5. Setup Redis (optional, rate limiting falls back to in-memory)
	redisClient, err := redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	eventRepo := postgres.NewEventRepository(dbPool)

	// 7. Setup UseCases
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	profileUC := usecase.NewProfileUsecase(userRepo, imageStore)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo)
	postUC := usecase.NewPostUsecase(postRepo, userRepo, imageStore)
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo)
	eventUC := usecase.NewEventUsecase(eventRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:    authUC,
		ProfileUC: profileUC,
		JobUC:     jobUC,
		PostUC:    postUC,
		MessageUC: messageUC,
		EventUC:   eventUC,
		Tokens:    tokens,
		Redis:     redisClient,
		Config:    cfg,
	})

	// 9. Start Server
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
