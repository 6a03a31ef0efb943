package bookings

import (
	"tigertix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Use(middleware.JWTAuth())
	{
		bookingRoutes.POST("/purchase", controller.Purchase)            // POST /api/v1/bookings/purchase - Buy tickets directly
		bookingRoutes.POST("/:bookingId/cancel", controller.CancelBooking) // POST /api/v1/bookings/:bookingId/cancel
		bookingRoutes.GET("/:bookingId", controller.GetBooking)         // GET /api/v1/bookings/:bookingId
		bookingRoutes.GET("", controller.GetUserBookings)               // GET /api/v1/bookings - Current user's bookings
	}

	adminRoutes := router.Group("/admin/events")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRoutes.GET("/:eventId/bookings", controller.GetEventBookings) // GET /api/v1/admin/events/:eventId/bookings
	}
}
