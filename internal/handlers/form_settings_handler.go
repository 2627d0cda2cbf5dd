package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/httpresp"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	ucsettings "github.com/BruksfildServices01/lesson-booking/internal/usecase/settings"
)

type FormSettingsHandler struct {
	svc *ucsettings.Service
}

func NewFormSettingsHandler(svc *ucsettings.Service) *FormSettingsHandler {
	return &FormSettingsHandler{svc: svc}
}

func (h *FormSettingsHandler) Get(c *gin.Context) {
	fs, err := h.svc.Get(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, fs)
}

func (h *FormSettingsHandler) Update(c *gin.Context) {
	var patch settings.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	fs, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, fs)
}
