package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "salonflow/database/repository/booking"
	catalogRepo "salonflow/database/repository/catalog"
	customerRepo "salonflow/database/repository/customer"
	holdRepo "salonflow/database/repository/hold"
	tokenRepo "salonflow/database/repository/token"
	"salonflow/models"
	"salonflow/services/notification"
	"salonflow/utils"

	"github.com/google/uuid"
)

// ReminderScheduler queues an appointment reminder. Best-effort; promotion
// never fails because a reminder could not be queued.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultPromoter implements Promoter.
type DefaultPromoter struct {
	Bookings  bookingRepo.BookingRepository
	Holds     holdRepo.HoldRepository
	Customers customerRepo.CustomerRepository
	Tokens    tokenRepo.TokenRepository
	Catalog   catalogRepo.ServiceCatalog
	Locks     *SlotLocks
	Clock     utils.Clock
	Notifier  notification.Publisher
	Reminders ReminderScheduler

	ManageBaseURL string
	LockWait      time.Duration
	ReminderLead  time.Duration
}

// Promote converts a verified hold into a persisted booking. The slot is
// re-checked against bookings immediately before insert: a pending/confirmed
// booking can have arrived through the direct creation path during the hold's
// lifetime. On conflict the hold stays VERIFIED and unconsumed.
func (p *DefaultPromoter) Promote(ctx context.Context, hold *models.Hold) (*models.Booking, string, error) {
	logger := utils.GetLogger()

	key := SlotKey(hold.SalonID, hold.Date, hold.Time)
	if !p.Locks.Acquire(key, p.LockWait) {
		return nil, "", &SlotConflictError{Kind: ConflictBooking}
	}
	locked := true
	defer func() {
		if locked {
			p.Locks.Release(key)
		}
	}()

	// The caller's hold may be a stale snapshot: a racing verify can have
	// promoted it while we waited for the lock. Re-read under the lock and
	// return the winner's outcome instead of treating its booking as a
	// conflict.
	current, err := p.Holds.GetByID(ctx, hold.ID)
	if err != nil {
		return nil, "", ErrServiceUnavailable
	}
	if current != nil && current.State == models.HoldStateConsumed {
		booking, err := p.Bookings.GetByID(ctx, current.BookingID)
		if err != nil || booking == nil {
			return nil, "", ErrServiceUnavailable
		}
		return booking, current.ManageURL, nil
	}

	count, err := p.Bookings.CountAtSlot(ctx, hold.SalonID, hold.Date, hold.Time, models.SlotBlockingStatuses)
	if err != nil {
		return nil, "", ErrServiceUnavailable
	}
	if count > 0 {
		return nil, "", &SlotConflictError{Kind: ConflictBooking}
	}

	svc, err := p.Catalog.ServiceByID(ctx, hold.SalonID, hold.ServiceID)
	if err != nil || svc == nil {
		return nil, "", ErrServiceUnavailable
	}

	customer, err := p.Customers.FindOrCreate(ctx, hold.SalonID, hold.CustomerPhone, hold.CustomerName)
	if err != nil {
		return nil, "", ErrServiceUnavailable
	}

	// Token entropy failure aborts the promotion; there is no weak fallback.
	token, err := utils.GenerateManageToken()
	if err != nil {
		logger.Error("management token generation failed", zap.Error(err))
		return nil, "", ErrServiceUnavailable
	}

	now := p.Clock.Now()
	booking := &models.Booking{
		ID:         uuid.New().String(),
		SalonID:    hold.SalonID,
		ServiceID:  hold.ServiceID,
		CustomerID: customer.ID,
		Date:       hold.Date,
		Time:       hold.Time,
		Status:     models.BookingStatusPending,
		TotalPrice: svc.Price,
		CreatedAt:  now,
	}
	if err := p.Bookings.Insert(ctx, booking); err != nil {
		return nil, "", ErrServiceUnavailable
	}
	if err := p.Tokens.Insert(ctx, &models.ManagementToken{
		Token:     token,
		BookingID: booking.ID,
		CreatedAt: now,
	}); err != nil {
		return nil, "", ErrServiceUnavailable
	}

	manageURL := p.ManageBaseURL + "/manage/" + token
	if err := p.Holds.SetConsumed(ctx, hold.ID, booking.ID, manageURL); err != nil {
		logger.Error("failed to mark hold consumed", zap.String("holdId", hold.ID), zap.Error(err))
	}

	// Side effects run outside the slot lock.
	p.Locks.Release(key)
	locked = false

	p.Notifier.Publish(ctx, notification.TopicBookingCreated, models.BookingEvent{
		BookingID: booking.ID,
		SalonID:   booking.SalonID,
		Date:      booking.Date,
		Time:      booking.Time,
		Status:    booking.Status,
	})

	if p.Reminders != nil {
		if slotStart, err := utils.SlotStartTime(booking.Date, booking.Time); err == nil {
			fireAt := slotStart.Add(-p.ReminderLead)
			if fireAt.After(now) {
				payload := models.ReminderPayload{
					BookingID: booking.ID,
					Phone:     hold.CustomerPhone,
					SalonID:   booking.SalonID,
					Date:      booking.Date,
					Time:      utils.FormatSlotTime(booking.Time),
				}
				if err := p.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
					logger.Warn("failed to queue booking reminder", zap.String("bookingId", booking.ID), zap.Error(err))
				}
			}
		}
	}

	logger.Info("hold promoted to booking",
		zap.String("holdId", hold.ID),
		zap.String("bookingId", booking.ID),
	)
	return booking, manageURL, nil
}
