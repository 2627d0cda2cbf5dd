package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	loc   *time.Location
}

func NewAuditLogsHandler(store audit.Store, loc *time.Location) *AuditLogsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditLogsHandler{store: store, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range, both ends inclusive
	// --------------------------------------------------

	if from := c.Query("from"); from != "" {
		if d, err := time.ParseInLocation("2006-01-02", from, h.loc); err == nil {
			f.From = d
		}
	}
	if to := c.Query("to"); to != "" {
		if d, err := time.ParseInLocation("2006-01-02", to, h.loc); err == nil {
			f.To = d.AddDate(0, 0, 1)
		}
	}

	f.Normalize()

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
