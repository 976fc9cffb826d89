package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"spottive/internal/realtime"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	pool      *pgxpool.Pool
	hub       *realtime.Hub
	startedAt time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(pool *pgxpool.Pool, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{pool: pool, hub: hub, startedAt: time.Now()}
}

// Live serves GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info serves GET /health/info.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "spottive",
		"version": Version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready serves GET /health/ready: the process is ready when the
// database answers.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"reason": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"subscribers": h.hub.SubscriberCount(),
		"dropped":     h.hub.Dropped(),
	})
}
