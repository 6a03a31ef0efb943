package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tigertix/api/routes"
	"tigertix/internal/holds"
	"tigertix/internal/notifications"
	"tigertix/internal/shared/config"
	"tigertix/internal/shared/database"
	"tigertix/internal/shared/middleware"
	"tigertix/pkg/logger"
	"tigertix/pkg/ratelimit"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize databases", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Hold state lives in Redis when available so holds survive restarts,
	// otherwise in process memory
	var holdStore holds.Store
	if db.Redis != nil {
		holdStore = holds.NewRedisStore(db.Redis)
		appLogger.Info("Using Redis-backed hold store")
	} else {
		holdStore = holds.NewMemoryStore()
		appLogger.Info("Using in-memory hold store")
	}

	producer, consumerCleanup := setupNotifications(cfg, appLogger)
	if producer != nil {
		defer producer.Close()
	}
	if consumerCleanup != nil {
		defer consumerCleanup()
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	}

	engine := setupRouter(cfg, db, producer, holdStore, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("api_base", cfg.GetAPIBasePath()),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// setupNotifications starts the Kafka producer and consumer when enabled.
// Failures are logged and the API runs without notifications, bookings
// must not depend on the broker being up.
func setupNotifications(cfg *config.Config, appLogger *logger.Logger) (notifications.Producer, func()) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := notifications.NewKafkaProducer(
		notifications.DefaultKafkaProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.BookingsTopic))
	if err != nil {
		appLogger.Error("Failed to initialize Kafka producer, continuing without notifications",
			slog.Any("error", err))
		return nil, nil
	}

	consumer, err := notifications.NewKafkaConsumer(&notifications.KafkaConsumerConfig{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.BookingsTopic,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	})
	if err != nil {
		appLogger.Error("Failed to initialize Kafka consumer", slog.Any("error", err))
		return producer, nil
	}

	consumerCtx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			appLogger.Error("Notification consumer stopped", slog.Any("error", err))
		}
	}()

	appLogger.Info("Kafka notifications enabled",
		slog.String("topic", cfg.Kafka.BookingsTopic),
		slog.String("consumer_group", cfg.Kafka.ConsumerGroup),
	)

	cleanup := func() {
		cancel()
		if err := consumer.Close(); err != nil {
			appLogger.Error("Error closing consumer", slog.Any("error", err))
		}
	}
	return producer, cleanup
}

func setupRouter(cfg *config.Config, db *database.DB, producer notifications.Producer, holdStore holds.Store, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestLogger(), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, producer, holdStore)
	appRouter.SetupRoutes(engine)

	return engine
}
