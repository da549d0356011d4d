package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Afeez1131/invoice-parsers/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiter ClientLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(BodySizeLimitMiddleware(cfg.Limits.MaxBodyMB))

	// Service metadata endpoints
	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)

	// Parse endpoint, rate limited per client
	router.POST("/parse", RateLimitMiddleware(limiter), handler.ParseInvoice)

	return router
}
