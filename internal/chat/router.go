package chat

import (
	"tigertix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupChatRoutes(router *gin.RouterGroup, controller Controller) {
	chatRoutes := router.Group("/chat")
	{
		// Parsing and browsing are public, booking actions need a user
		chatRoutes.POST("/parse", controller.ParseMessage) // POST /api/v1/chat/parse - Extract intent from a message
		chatRoutes.GET("/events", controller.ListEvents)   // GET /api/v1/chat/events - Events the assistant can offer

		authenticated := chatRoutes.Group("")
		authenticated.Use(middleware.JWTAuth())
		{
			authenticated.POST("/prepare", controller.Prepare) // POST /api/v1/chat/prepare - Stage a booking
			authenticated.POST("/confirm", controller.Confirm) // POST /api/v1/chat/confirm - Complete a staged booking
		}
	}
}
