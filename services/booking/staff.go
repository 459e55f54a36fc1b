package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "salonflow/database/repository/booking"
	catalogRepo "salonflow/database/repository/catalog"
	customerRepo "salonflow/database/repository/customer"
	"salonflow/models"
	"salonflow/services/notification"
	"salonflow/utils"

	"github.com/google/uuid"
)

// DefaultStaffBookingService implements StaffBookingService: the direct,
// staff-entered creation path. It skips phone verification but shares the
// slot-conflict rule and the per-slot serialization with the hold workflow.
type DefaultStaffBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Customers customerRepo.CustomerRepository
	Catalog   catalogRepo.ServiceCatalog
	Slots     *SlotIndex
	Locks     *SlotLocks
	Clock     utils.Clock
	Notifier  notification.Publisher
	LockWait  time.Duration
}

func (s *DefaultStaffBookingService) CreateBooking(ctx context.Context, in StaffBookingInput) (*models.Booking, error) {
	if in.SalonID == "" || in.ServiceID == "" {
		return nil, &InputError{Reason: "salonId and serviceId are required"}
	}
	if in.CustomerName == "" {
		return nil, &InputError{Reason: "customerName is required"}
	}
	phone, err := utils.NormalizePhone(in.CustomerPhone)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	if _, err := utils.ParseSlotDate(in.Date); err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	minute, err := utils.ParseSlotTime(in.Time)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	status := in.Status
	if status == "" {
		status = models.BookingStatusConfirmed
	}
	if status != models.BookingStatusPending && status != models.BookingStatusConfirmed {
		return nil, &InputError{Reason: "status must be PENDING or CONFIRMED"}
	}

	svc, err := s.Catalog.ServiceByID(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if svc == nil {
		return nil, &InputError{Reason: "unknown service for this salon"}
	}

	key := SlotKey(in.SalonID, in.Date, minute)
	if !s.Locks.Acquire(key, s.LockWait) {
		return nil, &SlotConflictError{Kind: ConflictHold}
	}
	locked := true
	defer func() {
		if locked {
			s.Locks.Release(key)
		}
	}()

	conflict, err := s.Slots.Check(ctx, in.SalonID, in.Date, minute)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if conflict != nil {
		return nil, conflict
	}

	customer, err := s.Customers.FindOrCreate(ctx, in.SalonID, phone, in.CustomerName)
	if err != nil {
		return nil, ErrServiceUnavailable
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		SalonID:    in.SalonID,
		ServiceID:  in.ServiceID,
		CustomerID: customer.ID,
		Date:       in.Date,
		Time:       minute,
		Status:     status,
		TotalPrice: svc.Price,
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Bookings.Insert(ctx, booking); err != nil {
		return nil, ErrServiceUnavailable
	}

	s.Locks.Release(key)
	locked = false

	s.Notifier.Publish(ctx, notification.TopicBookingCreated, models.BookingEvent{
		BookingID: booking.ID,
		SalonID:   booking.SalonID,
		Date:      booking.Date,
		Time:      booking.Time,
		Status:    booking.Status,
	})

	utils.GetLogger().Info("staff booking created", zap.String("bookingId", booking.ID))
	return booking, nil
}
