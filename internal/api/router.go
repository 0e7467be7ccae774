// Package api exposes the analysis pipeline as a small JSON HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const serviceName = "comment-analyzer"

// NewRouter creates the Gin router serving the latest analysis held by session.
func NewRouter(session *Session, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	handler := NewAnalysisHandler(session, log)

	router.GET("/health", healthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", handler.Analyze)
		v1.GET("/comments", handler.Comments)
		v1.GET("/sentiment", handler.Sentiment)
		v1.GET("/suggestions", handler.Suggestions)
		v1.GET("/summary", handler.Summary)
	}

	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

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

func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

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
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
