package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database,omitempty"`
	Uptime   string `json:"uptime,omitempty"`
}

// SystemHandler serves the health endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
	timeout   time.Duration
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
		timeout:   2 * time.Second,
	}
}

// Health handles GET /health; 503 when the database does not answer
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	if err := h.db.Ping(ctx); err != nil {
		logger.L(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Time: now, Database: "error"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Time: now, Database: "ok"})
}

// Ready handles GET /health/ready
func (h *SystemHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Time:   time.Now().Format(time.RFC3339),
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}
