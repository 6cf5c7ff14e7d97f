package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger is the health probe a backing service must answer.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis *redis.Client
}

func NewHealthHandler(db Pinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health reports liveness of the service and its backing stores. Degraded
// backends turn the response into a 503 so orchestration can restart us.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{"database": true, "redis": true}
	healthy := true

	if h.db == nil || h.db.HealthCheck(ctx) != nil {
		checks["database"] = false
		healthy = false
	}
	if h.redis == nil || h.redis.Ping(ctx).Err() != nil {
		checks["redis"] = false
		healthy = false
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"success": healthy,
		"status":  state,
		"checks":  checks,
	})
}

// Root serves the API index with a map of the available endpoints.
func Root(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"name":    "QuimiLab API",
		"version": "1.0",
		"endpoints": gin.H{
			"elements":  "/api/elements",
			"reactions": "/api/reactions",
			"molecules": "/api/molecules/search?q=",
			"validate":  "/api/reactions/validate",
			"ai":        "/api/ai/explain-reaction, /api/ai/explain-element, /api/ai/status",
		},
	})
}
