package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/common/constants"
	"github.com/moseskang00/book-summary-service/internal/app/handlers"
	"github.com/moseskang00/book-summary-service/internal/books"
	"github.com/moseskang00/book-summary-service/internal/cache"
	"github.com/moseskang00/book-summary-service/internal/config"
	"github.com/moseskang00/book-summary-service/internal/feedback"
	redisclient "github.com/moseskang00/book-summary-service/internal/redis"
	"github.com/moseskang00/book-summary-service/internal/summary"
)

func main() {
	// Load environment variables from .env file (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Cache store is optional: without it the service still works, it just
	// regenerates every summary and drops feedback events.
	var store *cache.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := redisclient.NewClient(context.Background(), redisclient.Config{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Warn("Redis unavailable, caching and feedback logging disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			store = cache.New(redisClient.Raw(), constants.CachePrefix)
			logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	} else {
		logger.Info("REDIS_ADDR not set, caching and feedback logging disabled")
	}

	booksClient := books.NewClient(books.Config{
		BaseURL: cfg.Books.BaseURL,
		Timeout: cfg.Books.Timeout,
	}, logger)

	var summarizer handlers.Summarizer
	var imageGen handlers.ImageGenerator
	if cfg.OpenAI.APIKey != "" {
		openaiClient := summary.NewOpenAIClient(summary.OpenAIConfig{
			APIKey:     cfg.OpenAI.APIKey,
			ChatModel:  cfg.OpenAI.ChatModel,
			ImageModel: cfg.OpenAI.ImageModel,
		}, logger)
		summarizer = summary.NewService(openaiClient, store, logger)
		imageGen = openaiClient
	} else {
		logger.Warn("OPENAI_API_KEY not set, summarize and generate-image disabled")
	}

	feedbackLogger := feedback.New(store, logger)

	handler := handlers.New(booksClient, summarizer, imageGen, feedbackLogger, logger)

	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(handler)

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   120 * time.Second, // summary generation is slow
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func setupRouter(handler *handlers.Handler) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())

	handler.RegisterRoutes(router)

	return router
}

// CORS middleware
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}
