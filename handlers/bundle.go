package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all route handlers for registration.
type HandlerBundle struct {
	// Hold endpoints.
	CreateHoldHandler gin.HandlerFunc
	GetHoldHandler    gin.HandlerFunc
	CancelHoldHandler gin.HandlerFunc

	// OTP endpoints.
	SendOTPHandler   gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc

	// Manage endpoints.
	GetBookingHandler    gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc

	// Staff endpoints.
	CreateBookingHandler gin.HandlerFunc
}
