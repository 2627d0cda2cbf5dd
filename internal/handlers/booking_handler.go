package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/httpresp"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	ucbooking "github.com/BruksfildServices01/lesson-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucbooking.CreateBooking
	list         *ucbooking.ListBookings
	updateStatus *ucbooking.UpdateBookingStatus
	export       *ucbooking.ExportBookings
}

func NewBookingHandler(
	create *ucbooking.CreateBooking,
	list *ucbooking.ListBookings,
	updateStatus *ucbooking.UpdateBookingStatus,
	export *ucbooking.ExportBookings,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		list:         list,
		updateStatus: updateStatus,
		export:       export,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CREATE (public)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req ucbooking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// ADMIN
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Items(c, bookings)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	b, err := h.updateStatus.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) Export(c *gin.Context) {
	file, err := h.export.Execute(c.Request.Context(), c.Query("format"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
