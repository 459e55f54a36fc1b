package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonflow/models"
	"salonflow/services/booking"
	"salonflow/utils"
)

// ManageHandler serves unauthenticated booking view/cancel by manage token.
type ManageHandler struct {
	Svc booking.ManageService
}

// NewManageHandler creates a ManageHandler.
func NewManageHandler(svc booking.ManageService) *ManageHandler {
	return &ManageHandler{Svc: svc}
}

type bookingView struct {
	ID         string  `json:"id"`
	SalonID    string  `json:"salonId"`
	ServiceID  string  `json:"serviceId"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

func newBookingView(b *models.Booking) bookingView {
	return bookingView{
		ID:         b.ID,
		SalonID:    b.SalonID,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		Time:       utils.FormatSlotTime(b.Time),
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
	}
}

// GetBookingHandler resolves a manage token to its booking.
func (h *ManageHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Svc.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": newBookingView(b)})
}

// CancelBookingHandler cancels the booking behind a manage token. Idempotent.
func (h *ManageHandler) CancelBookingHandler(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
