package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/anxforever/portfolio-api/types"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves liveness and readiness probes. The redis client is
// nil when the in-memory rate limit store is in use; readiness then has no
// external dependency to check.
type HealthHandler struct {
	redisClient *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redisClient: redisClient}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{Status: types.HealthStatusUp})
}

// Readiness reports whether the service can take traffic, pinging Redis
// when it backs the rate limit store.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusOK, types.HealthResponse{Status: types.HealthStatusUp})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{"redis": types.HealthStatusUp}
	status := http.StatusOK
	overall := types.HealthStatusUp

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		components["redis"] = types.HealthStatusDown
		overall = types.HealthStatusDown
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, types.HealthResponse{Status: overall, Components: components})
}
