package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"invoicelens/internal/handler"
	"invoicelens/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
	logger logrus.FieldLogger,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/health", healthH.Liveness)
	r.GET("/healthz", healthH.Liveness)

	// Extraction
	r.POST("/process", extractionH.Process)
	r.POST("/api/extract", extractionH.Process)

	return r
}
