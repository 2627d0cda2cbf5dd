package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
)

// ReadyCheck reports whether a backing dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]ReadyCheck
}

func NewHealthHandler(checks map[string]ReadyCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			_ = c.Error(err)
			httperr.Write(c, http.StatusServiceUnavailable, "not_ready", name+" is unavailable.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
