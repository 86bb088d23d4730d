package handlers

import (
	"errors"
	"net/http"

	"fixhive/models"
	"fixhive/services/scheduling"
	"fixhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Engine scheduling.SchedulingEngine
	Logger *zap.Logger
}

func NewBookingHandler(engine scheduling.SchedulingEngine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// GetAvailableSlots handles GET /api/shops/:id/availability?date=YYYY-MM-DD.
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	shopID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	result, err := h.Engine.AvailableSlots(c.Request.Context(), shopID, date)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitBooking handles POST /api/bookings.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Engine.SubmitBooking(c.Request.Context(), req)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "booking": booking})
}

// UpdateBooking handles PATCH /api/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var update models.BookingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Engine.UpdateBooking(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": booking})
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status. It accepts only
// a status and routes it through the same update path.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Engine.UpdateBooking(c.Request.Context(), c.Param("id"), models.BookingUpdate{Status: &input.Status})
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": booking})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.Engine.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": booking})
}

// ListShopBookings handles GET /api/shops/:id/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) ListShopBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	bookings, err := h.Engine.ListShopBookings(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondEngineError maps engine errors onto the wire contract: validation
// errors are caller mistakes, capacity conflicts are retryable against
// another slot, everything else is a retryable upstream failure.
func (h *BookingHandler) respondEngineError(c *gin.Context, err error) {
	var vErr *scheduling.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": vErr.Code, "message": vErr.Message})
		return
	}
	var cErr *scheduling.CapacityConflictError
	if errors.As(err, &cErr) {
		c.JSON(http.StatusConflict, gin.H{
			"ok":      false,
			"reason":  scheduling.ReasonCapacityFull,
			"scope":   cErr.Scope,
			"limit":   cErr.Limit,
			"message": cErr.Error(),
		})
		return
	}
	h.Logger.Error("booking operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusServiceUnavailable, "operation failed, please retry", err.Error())
}
