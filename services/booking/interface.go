package booking

import (
	"context"

	"salonflow/models"
)

// CreateHoldInput carries a customer's slot reservation request.
type CreateHoldInput struct {
	SalonID       string
	ServiceID     string
	Date          string // "YYYY-MM-DD"
	Time          string // "HH:MM"
	CustomerName  string
	CustomerPhone string
}

// HoldService manages the hold lifecycle: creation against the slot index,
// lookup with lazy expiry, and cancellation.
type HoldService interface {
	CreateHold(ctx context.Context, in CreateHoldInput) (*models.Hold, error)
	GetHold(ctx context.Context, holdID string) (*models.Hold, error)
	CancelHold(ctx context.Context, holdID string) error
}

// Promoter converts a verified hold into a persisted booking and mints the
// management token. Returns the booking and the manage URL.
type Promoter interface {
	Promote(ctx context.Context, hold *models.Hold) (*models.Booking, string, error)
}

// StaffBookingInput is the direct, staff-entered booking creation request.
type StaffBookingInput struct {
	SalonID       string
	ServiceID     string
	Date          string // "YYYY-MM-DD"
	Time          string // "HH:MM"
	CustomerName  string
	CustomerPhone string
	Status        string // PENDING or CONFIRMED; defaults to CONFIRMED
}

// StaffBookingService is the direct booking-creation path. It shares the slot
// conflict rule and the per-slot serialization with the hold workflow.
type StaffBookingService interface {
	CreateBooking(ctx context.Context, in StaffBookingInput) (*models.Booking, error)
}

// ManageService resolves management tokens for unauthenticated view/cancel.
type ManageService interface {
	Resolve(ctx context.Context, token string) (*models.Booking, error)
	Cancel(ctx context.Context, token string) error
}
