package server

import (
	"context"
	"net/http"
	"time"

	"kinetica/internal/api"
	"kinetica/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

type SystemHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewSystemHandler(database *sqlx.DB, rdb *redis.Client) *SystemHandler {
	return &SystemHandler{db: database, redis: rdb}
}

// @Summary      Health check
// @Description  Reports store and Redis reachability. A Redis outage degrades logout revocation only.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := api.HealthResponse{Status: "ok", Database: "up", Redis: "up"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.WithError(err).Error("health: database unreachable")
		resp.Status, resp.Database = "unavailable", "down"
		status = http.StatusServiceUnavailable
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("health: redis unreachable")
		resp.Redis = "down"
		if status == http.StatusOK {
			resp.Status = "degraded"
		}
	}

	c.JSON(status, resp)
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
