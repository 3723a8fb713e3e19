package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Pinger checks that a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the probes mounted outside /api/v1.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live always answers 200 while the process serves HTTP.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready answers 503 until the database responds.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	status, database := http.StatusOK, "healthy"
	if err := h.db.Ping(ctx); err != nil {
		status, database = http.StatusServiceUnavailable, "unhealthy: "+err.Error()
	}

	body := gin.H{"status": "ok", "checks": gin.H{"database": database}}
	if status != http.StatusOK {
		body["status"] = "error"
	}
	c.JSON(status, body)
}
