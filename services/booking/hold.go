package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "salonflow/database/repository/catalog"
	holdRepo "salonflow/database/repository/hold"
	"salonflow/models"
	"salonflow/utils"
)

// DefaultHoldService implements HoldService.
type DefaultHoldService struct {
	Holds    holdRepo.HoldRepository
	Catalog  catalogRepo.ServiceCatalog
	Slots    *SlotIndex
	Locks    *SlotLocks
	Clock    utils.Clock
	HoldTTL  time.Duration
	LockWait time.Duration
}

// ExpireIfDue recomputes the hold's state from its TTL at the given instant.
// Pure; persistence catches up opportunistically wherever holds are read.
func ExpireIfDue(h *models.Hold, now time.Time) *models.Hold {
	if h == nil {
		return nil
	}
	if (h.State == models.HoldStateActive || h.State == models.HoldStateVerified) && h.ExpiredAt(now) {
		out := *h
		out.State = models.HoldStateExpired
		return &out
	}
	return h
}

func (s *DefaultHoldService) CreateHold(ctx context.Context, in CreateHoldInput) (*models.Hold, error) {
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

	svc, err := s.Catalog.ServiceByID(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if svc == nil {
		return nil, &InputError{Reason: "unknown service for this salon"}
	}

	key := SlotKey(in.SalonID, in.Date, minute)
	if !s.Locks.Acquire(key, s.LockWait) {
		// Lock contention means someone else is mid-reservation for this slot.
		return nil, &SlotConflictError{Kind: ConflictHold}
	}
	defer s.Locks.Release(key)

	conflict, err := s.Slots.Check(ctx, in.SalonID, in.Date, minute)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if conflict != nil {
		return nil, conflict
	}

	now := s.Clock.Now()

	// An expired hold may still sit in ACTIVE state and block the unique
	// index; record its expiry before inserting.
	if stale, err := s.Holds.FindActiveRecordBySlot(ctx, in.SalonID, in.Date, minute); err == nil && stale != nil && stale.ExpiredAt(now) {
		if _, err := s.Holds.CompareAndSwapState(ctx, stale.ID, models.HoldStateActive, models.HoldStateExpired); err != nil {
			utils.GetLogger().Warn("failed to expire stale hold", zap.String("holdId", stale.ID), zap.Error(err))
		}
	}

	hold := &models.Hold{
		ID:            uuid.New().String(),
		SalonID:       in.SalonID,
		ServiceID:     in.ServiceID,
		Date:          in.Date,
		Time:          minute,
		CustomerName:  in.CustomerName,
		CustomerPhone: phone,
		State:         models.HoldStateActive,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.HoldTTL),
	}
	if err := s.Holds.Insert(ctx, hold); err != nil {
		if errors.Is(err, holdRepo.ErrDuplicateActiveHold) {
			return nil, &SlotConflictError{Kind: ConflictHold}
		}
		return nil, ErrServiceUnavailable
	}

	utils.GetLogger().Info("hold created",
		zap.String("holdId", hold.ID),
		zap.String("salonId", hold.SalonID),
		zap.String("date", hold.Date),
		zap.Int("time", hold.Time),
	)
	return hold, nil
}

func (s *DefaultHoldService) GetHold(ctx context.Context, holdID string) (*models.Hold, error) {
	hold, err := s.Holds.GetByID(ctx, holdID)
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	if hold == nil {
		return nil, ErrNotFound
	}

	now := s.Clock.Now()
	if expired := ExpireIfDue(hold, now); expired.State == models.HoldStateExpired && hold.State != models.HoldStateExpired {
		// Persist the observed expiry so the slot index blocker clears.
		if _, err := s.Holds.CompareAndSwapState(ctx, hold.ID, hold.State, models.HoldStateExpired); err != nil {
			utils.GetLogger().Warn("failed to persist hold expiry", zap.String("holdId", hold.ID), zap.Error(err))
		}
		return nil, ErrExpired
	}
	if hold.State == models.HoldStateExpired {
		return nil, ErrExpired
	}
	return hold, nil
}

// CancelHold is idempotent: cancelling an already-terminal hold succeeds.
func (s *DefaultHoldService) CancelHold(ctx context.Context, holdID string) error {
	hold, err := s.Holds.GetByID(ctx, holdID)
	if err != nil {
		return ErrServiceUnavailable
	}
	if hold == nil {
		return ErrNotFound
	}
	switch hold.State {
	case models.HoldStateActive, models.HoldStateVerified:
		if _, err := s.Holds.CompareAndSwapState(ctx, hold.ID, hold.State, models.HoldStateCancelled); err != nil {
			return ErrServiceUnavailable
		}
	}
	return nil
}
