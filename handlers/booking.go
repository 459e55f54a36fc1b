package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonflow/services/booking"
)

// StaffBookingHandler serves the direct, staff-entered booking creation route.
type StaffBookingHandler struct {
	Svc booking.StaffBookingService
}

// NewStaffBookingHandler creates a StaffBookingHandler.
func NewStaffBookingHandler(svc booking.StaffBookingService) *StaffBookingHandler {
	return &StaffBookingHandler{Svc: svc}
}

// CreateBookingHandler creates a booking without phone verification. Shares
// the slot-conflict rule with the hold workflow.
func (h *StaffBookingHandler) CreateBookingHandler(c *gin.Context) {
	var req struct {
		SalonID       string `json:"salonId" binding:"required"`
		ServiceID     string `json:"serviceId" binding:"required"`
		Date          string `json:"date" binding:"required"`
		Time          string `json:"time" binding:"required"`
		CustomerName  string `json:"customerName" binding:"required"`
		CustomerPhone string `json:"customerPhone" binding:"required"`
		Status        string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), booking.StaffBookingInput{
		SalonID:       req.SalonID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": b})
}
