package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hi8esh/askziva/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
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
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	router.GET("/", handler.Home)
	router.GET("/health", handler.HealthCheck)

	// Scan endpoints, at the root so the existing frontend keeps working
	router.POST("/scan", handler.Scan)
	router.GET("/analyze", handler.Analyze)

	return router
}
