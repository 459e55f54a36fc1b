package booking

import (
	"context"

	bookingRepo "salonflow/database/repository/booking"
	holdRepo "salonflow/database/repository/hold"
	"salonflow/models"
	"salonflow/utils"
)

// SlotIndex answers whether a (salon, date, time) slot is occupied by a
// pending/confirmed booking or a live hold. Hold expiry is evaluated lazily at
// query time; there is no background sweep in the availability path.
// Side-effect-free.
type SlotIndex struct {
	Bookings bookingRepo.BookingRepository
	Holds    holdRepo.HoldRepository
	Clock    utils.Clock
}

// Check returns nil when the slot is free, or a SlotConflictError naming the
// kind of occupant.
func (s *SlotIndex) Check(ctx context.Context, salonID, date string, minute int) (*SlotConflictError, error) {
	count, err := s.Bookings.CountAtSlot(ctx, salonID, date, minute, models.SlotBlockingStatuses)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &SlotConflictError{Kind: ConflictBooking}, nil
	}

	hold, err := s.Holds.FindBlockingBySlot(ctx, salonID, date, minute, s.Clock.Now())
	if err != nil {
		return nil, err
	}
	if hold != nil {
		return &SlotConflictError{Kind: ConflictHold}, nil
	}
	return nil, nil
}
