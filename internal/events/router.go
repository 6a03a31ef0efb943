package events

import (
	"tigertix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)                 // GET /api/v1/events - Browse all events
		publicEvents.GET("/available", controller.GetAvailableEvents) // GET /api/v1/events/available - Events with tickets left
		publicEvents.GET("/:eventId", controller.GetEvent)            // GET /api/v1/events/:eventId - Event details
	}

	// Admin routes - only admins can create, update and delete events
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)              // POST /api/v1/admin/events - Create event
		adminEvents.PUT("/:eventId", controller.UpdateEvent)      // PUT /api/v1/admin/events/:eventId - Update event
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)   // DELETE /api/v1/admin/events/:eventId - Delete event
	}
}
