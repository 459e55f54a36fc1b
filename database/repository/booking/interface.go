package bookingRepo

import (
	"context"

	"salonflow/models"
)

// BookingRepository persists booking records.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// CountAtSlot counts bookings occupying the slot with one of the given statuses.
	CountAtSlot(ctx context.Context, salonID, date string, minute int, statuses []string) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
