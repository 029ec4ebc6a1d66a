package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sikado/tutoring-service/internal/auth"
	"github.com/sikado/tutoring-service/internal/cache"
	"github.com/sikado/tutoring-service/internal/config"
	"github.com/sikado/tutoring-service/internal/events"
	"github.com/sikado/tutoring-service/internal/handlers"
	"github.com/sikado/tutoring-service/internal/repositories/postgres"
	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/storage"
	"github.com/sikado/tutoring-service/internal/utils"
	"github.com/sikado/tutoring-service/internal/validator"
	"github.com/sikado/tutoring-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize event publisher. Kafka when brokers are configured, an
	// in-process channel otherwise.
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(slogLogger)
	}

	// Initialize avatar storage (if configured)
	var avatarStore storage.AvatarStore
	if cfg.Minio.Endpoint != "" {
		avatarStore, err = storage.NewMinioAvatarStore(context.Background(), cfg.Minio)
		if err != nil {
			log.Printf("Warning: Failed to initialize avatar storage: %v", err)
		}
	}

	var cacheManager *cache.CacheManager
	if redisClient != nil {
		cacheManager = cache.NewCacheManager(redisClient)
	}

	// Initialize services
	serviceManager := services.NewServiceManager(services.Deps{
		Repo:          repoManager.GetRepository(),
		Logger:        slogLogger,
		Validator:     validator.New(),
		Tokens:        auth.NewTokenCodec(cfg.JWTSecret, "tutoring-service", cfg.TokenTTL),
		Publisher:     publisher,
		Cache:         cacheManager,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, repoManager.GetRepository().User(), avatarStore, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
