package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonflow/services/booking"
)

// HoldHandler serves the slot reservation endpoints.
type HoldHandler struct {
	Svc    booking.HoldService
	Logger *zap.Logger
}

// NewHoldHandler creates a HoldHandler.
func NewHoldHandler(svc booking.HoldService, logger *zap.Logger) *HoldHandler {
	return &HoldHandler{Svc: svc, Logger: logger}
}

// CreateHoldHandler places a time-limited hold on a slot.
func (h *HoldHandler) CreateHoldHandler(c *gin.Context) {
	var req struct {
		SalonID       string `json:"salonId" binding:"required"`
		ServiceID     string `json:"serviceId" binding:"required"`
		Date          string `json:"date" binding:"required"`
		Time          string `json:"time" binding:"required"`
		CustomerName  string `json:"customerName" binding:"required"`
		CustomerPhone string `json:"customerPhone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	hold, err := h.Svc.CreateHold(c.Request.Context(), booking.CreateHoldInput{
		SalonID:       req.SalonID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"holdId":    hold.ID,
		"expiresAt": hold.ExpiresAt,
	})
}

// GetHoldHandler returns the hold if it is still live.
func (h *HoldHandler) GetHoldHandler(c *gin.Context) {
	hold, err := h.Svc.GetHold(c.Request.Context(), c.Param("holdID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "hold": hold})
}

// CancelHoldHandler releases a hold. Idempotent.
func (h *HoldHandler) CancelHoldHandler(c *gin.Context) {
	if err := h.Svc.CancelHold(c.Request.Context(), c.Param("holdID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
