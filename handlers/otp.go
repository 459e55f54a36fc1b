package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonflow/services/otp"
)

// OTPHandler serves the phone verification endpoints.
type OTPHandler struct {
	Svc otp.Service
}

// NewOTPHandler creates an OTPHandler.
func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{Svc: svc}
}

// SendOTPHandler dispatches a one-time code to the hold's phone. The code is
// never included in the response.
func (h *OTPHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Phone  string `json:"phone" binding:"required"`
		HoldID string `json:"holdId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.Svc.SendCode(c.Request.Context(), req.Phone, req.HoldID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyOTPHandler verifies the submitted code and, on success, returns the
// manage URL for the promoted booking.
func (h *OTPHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Phone        string `json:"phone" binding:"required"`
		Code         string `json:"code" binding:"required"`
		HoldID       string `json:"holdId" binding:"required"`
		CustomerName string `json:"customerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	manageURL, err := h.Svc.VerifyCode(c.Request.Context(), req.Phone, req.Code, req.HoldID, req.CustomerName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "manageUrl": manageURL})
}
