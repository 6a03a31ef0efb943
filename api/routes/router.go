package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tigertix/internal/auth"
	"tigertix/internal/bookings"
	"tigertix/internal/chat"
	"tigertix/internal/events"
	"tigertix/internal/holds"
	"tigertix/internal/notifications"
	"tigertix/internal/shared/config"
	"tigertix/internal/shared/database"
	"tigertix/pkg/cache"
)

// Router wires repositories, services, and controllers together and
// registers every route group
type Router struct {
	config    *config.Config
	db        *database.DB
	producer  notifications.Producer
	holdStore holds.Store
}

func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer, holdStore holds.Store) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		producer:  producer,
		holdStore: holdStore,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		eventService := r.setupEventRoutes(api)
		bookingService := r.setupBookingRoutes(api)
		holdService := holds.NewService(r.holdStore, eventService, bookingService, r.config.HoldTTL)
		holds.SetupHoldRoutes(api, holds.NewController(holdService))

		r.setupChatRoutes(api, eventService, holdService)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tigertix",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tigertix",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) events.Service {
	eventRepo := events.NewRepository(r.db.PostgreSQL)
	eventService := events.NewService(eventRepo)

	if r.db.Redis != nil {
		eventService.SetCacheService(cache.NewService(r.db.Redis))
	}

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)

	return eventService
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) bookings.Service {
	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)
	bookingService := bookings.NewService(bookingRepo, r.producer)

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)

	return bookingService
}

func (r *Router) setupChatRoutes(rg *gin.RouterGroup, eventService events.Service, holdService holds.Service) {
	chatService := chat.NewService(eventService, holdService)
	chatController := chat.NewController(chatService)

	chat.SetupChatRoutes(rg, chatController)
}
