package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quimilab/backend/internal/logger"
)

// Recovery converts panics into the uniform error envelope instead of
// letting gin's default recovery write a bare 500.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Error interno del servidor",
			},
		})
	})
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
		}
		if requestID := c.GetString(RequestIDKey); requestID != "" {
			fields = append(fields, "request_id", requestID)
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
			return
		}
		log.Info("request handled", fields...)
	}
}
