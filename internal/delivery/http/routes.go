package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rosechem/whatsapp-bot/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/health", handler.HealthCheck)

	router.GET("/webhook", handler.VerifyWebhook)
	router.POST("/webhook", handler.ReceiveWebhook)

	api := router.Group("/api")
	{
		api.GET("/chats", handler.ListChats)
	}

	return router
}
