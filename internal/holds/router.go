package holds

import (
	"tigertix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(router *gin.RouterGroup, controller Controller) {
	holdRoutes := router.Group("/holds")
	holdRoutes.Use(middleware.JWTAuth())
	{
		holdRoutes.POST("", controller.Prepare)         // POST /api/v1/holds - Hold tickets for an event
		holdRoutes.POST("/confirm", controller.Confirm) // POST /api/v1/holds/confirm - Commit a pending hold
	}
}
