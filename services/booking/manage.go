package booking

import (
	"context"

	"go.uber.org/zap"

	bookingRepo "salonflow/database/repository/booking"
	tokenRepo "salonflow/database/repository/token"
	"salonflow/models"
	"salonflow/services/notification"
	"salonflow/utils"
)

// DefaultManageService implements ManageService. Possession of the token is
// the only credential; tokens carry enough entropy to be unguessable.
type DefaultManageService struct {
	Bookings bookingRepo.BookingRepository
	Tokens   tokenRepo.TokenRepository
	Notifier notification.Publisher
}

func (s *DefaultManageService) Resolve(ctx context.Context, token string) (*models.Booking, error) {
	rec, err := s.Tokens.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	booking, err := s.Bookings.GetByID(ctx, rec.BookingID)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	return booking, nil
}

// Cancel transitions the booking to CANCELLED. Cancelling an already-cancelled
// booking is idempotent success, not an error.
func (s *DefaultManageService) Cancel(ctx context.Context, token string) error {
	booking, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}
	if err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusCancelled); err != nil {
		return ErrServiceUnavailable
	}

	s.Notifier.Publish(ctx, notification.TopicBookingCancelled, models.BookingEvent{
		BookingID: booking.ID,
		SalonID:   booking.SalonID,
		Date:      booking.Date,
		Time:      booking.Time,
		Status:    models.BookingStatusCancelled,
	})

	utils.GetLogger().Info("booking cancelled via manage token", zap.String("bookingId", booking.ID))
	return nil
}
