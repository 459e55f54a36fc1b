package holdRepo

import (
	"context"
	"errors"
	"time"

	"salonflow/models"
)

// ErrDuplicateActiveHold is returned by Insert when the partial unique index
// rejects a second ACTIVE hold for the same (salon, date, time) slot.
var ErrDuplicateActiveHold = errors.New("an active hold already exists for this slot")

// HoldRepository persists holds. State transitions go through CompareAndSwapState
// so concurrent writers cannot both move a hold out of the same state.
type HoldRepository interface {
	Insert(ctx context.Context, hold *models.Hold) error
	GetByID(ctx context.Context, id string) (*models.Hold, error)
	// FindBlockingBySlot returns a hold occupying the slot: state ACTIVE or
	// VERIFIED and not expired at the given instant. Nil when the slot is free
	// of holds. Expiry is evaluated here, lazily, at query time.
	FindBlockingBySlot(ctx context.Context, salonID, date string, minute int, now time.Time) (*models.Hold, error)
	// FindActiveRecordBySlot returns the hold stored with state ACTIVE for the
	// slot regardless of expiry. Used to clear the unique-index blocker left by
	// a hold whose TTL elapsed but whose state was never flipped.
	FindActiveRecordBySlot(ctx context.Context, salonID, date string, minute int) (*models.Hold, error)
	// CompareAndSwapState transitions the hold from one state to another.
	// Returns false when the hold is missing or no longer in the from state.
	CompareAndSwapState(ctx context.Context, id, from, to string) (bool, error)
	// SetConsumed marks the hold CONSUMED and records the promotion outputs.
	SetConsumed(ctx context.Context, id, bookingID, manageURL string) error
	// MarkExpiredDue flips past-TTL ACTIVE holds to EXPIRED. Non-authoritative
	// cleanup only; readers never depend on it.
	MarkExpiredDue(ctx context.Context, now time.Time) (int64, error)
}
