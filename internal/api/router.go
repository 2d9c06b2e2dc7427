package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/service"
	"github.com/seat-finder-api/pkg/logger"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.CORSOrigin))

	// Handlers
	importHandler := NewImportHandler(services, cfg, log)
	rosterHandler := NewRosterHandler(services, log)
	searchHandler := NewSearchHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, log))

	// API v1
	v1 := router.Group("/v1")
	{
		// Import endpoints
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("", importHandler.ListImports)
			imports.GET("/:import_id", importHandler.GetImport)
		}

		// Roster endpoints
		roster := v1.Group("/roster")
		{
			roster.GET("", rosterHandler.GetRoster)
			roster.PUT("", rosterHandler.ReplaceRoster)
			roster.POST("/reset", rosterHandler.ResetRoster)
			roster.GET("/export", rosterHandler.ExportRoster)
		}

		v1.GET("/search", searchHandler.Search)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

// metricsHandler returns roster and import metrics
// Import history failures are logged and leave "recorded" out of the response.
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("handler", "metrics").Logger()

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		imports := gin.H{}
		importCount, err := services.Import.CountImports(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count imports")
		} else {
			imports["recorded"] = importCount
		}

		c.JSON(http.StatusOK, gin.H{
			"roster": gin.H{
				"attendees": services.Roster.Count(ctx),
			},
			"imports":   imports,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
