package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonflow/services/booking"
	"salonflow/services/otp"
)

// respondError maps the domain error taxonomy onto the JSON error shape. Every
// branch carries a human-readable reason; rate limits carry a concrete wait.
func respondError(c *gin.Context, err error) {
	var rateLimited *otp.RateLimitedError
	if errors.As(err, &rateLimited) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"message":    rateLimited.Error(),
			"retryAfter": rateLimited.RetryAfter,
		})
		return
	}

	var status int
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrSlotUnavailable):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrExpired):
		// Distinct from 404 so the client prompts "start over" instead of "not found".
		status = http.StatusGone
	case errors.Is(err, otp.ErrInvalidCode), errors.Is(err, otp.ErrExhausted):
		status = http.StatusUnauthorized
	case errors.Is(err, otp.ErrDeliveryFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusServiceUnavailable
	}

	message := err.Error()
	if status == http.StatusServiceUnavailable {
		message = "service temporarily unavailable, please retry"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}
