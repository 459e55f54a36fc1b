package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSlotUnavailable    = errors.New("slot unavailable")
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("expired")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Conflict kinds reported by the slot index.
const (
	ConflictBooking = "booking"
	ConflictHold    = "hold"
)

// SlotConflictError carries which kind of record occupies the slot, so the
// caller can tell the user "already booked" vs "someone is completing a
// reservation right now".
type SlotConflictError struct {
	Kind string
}

func (e *SlotConflictError) Error() string {
	switch e.Kind {
	case ConflictHold:
		return "slot unavailable: another customer is completing a reservation for this time"
	default:
		return "slot unavailable: this time is already booked"
	}
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotUnavailable
}

// InputError wraps ErrInvalidInput with a field-level reason.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
