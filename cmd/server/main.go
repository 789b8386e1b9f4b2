package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/studyhub/studyhub-server/internal/api"
	"github.com/studyhub/studyhub-server/internal/cache"
	"github.com/studyhub/studyhub-server/internal/config"
	"github.com/studyhub/studyhub-server/internal/logger"
	"github.com/studyhub/studyhub-server/internal/realtime"
	"github.com/studyhub/studyhub-server/internal/repository"
	"github.com/studyhub/studyhub-server/internal/service"
)

const weeklyCacheTTL = 2 * time.Minute

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	log := logger.Init(cfg.Log)
	defer log.Sync()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to set up database", zap.Error(err))
	}
	defer db.Close()

	// Optional Redis cache for weekly study aggregates
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	weeklyCache := cache.NewWeeklyStudyCache(redisClient, weeklyCacheTTL)

	// Change feed hub
	hub := realtime.NewHub()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, hub, weeklyCache)

	// Create API handler
	handler := api.NewHandler(svc, hub)

	// Set up Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.RequestLogger(), logger.Recovery())

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
