package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/httpresp"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	ucavailability "github.com/BruksfildServices01/lesson-booking/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	windows  *ucavailability.WindowService
	schedule *ucavailability.GetSchedule
	locale   availability.Locale
}

func NewAvailabilityHandler(
	windows *ucavailability.WindowService,
	schedule *ucavailability.GetSchedule,
	locale availability.Locale,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		windows:  windows,
		schedule: schedule,
		locale:   locale,
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	windows, err := h.windows.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Items(c, windows)
}

// Slots returns the resolved schedule. An unknown ?locale falls back to the
// default locale rather than failing.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	locale := h.locale
	if tag := c.Query("locale"); tag != "" {
		locale = availability.ParseLocale(tag)
	}

	schedule, err := h.schedule.Execute(c.Request.Context(), locale)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, schedule)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AvailabilityHandler) Add(c *gin.Context) {
	var req ucavailability.AddWindowInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	w, err := h.windows.Add(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, w)
}

func (h *AvailabilityHandler) Remove(c *gin.Context) {
	if err := h.windows.Remove(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Success(c)
}

func (h *AvailabilityHandler) Clear(c *gin.Context) {
	if err := h.windows.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Success(c)
}
