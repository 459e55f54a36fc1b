package models

import "time"

// Hold states. A hold is born Active and leaves it exactly once: by expiry,
// explicit cancellation, or promotion (Verified then Consumed).
const (
	HoldStateActive    = "ACTIVE"
	HoldStateExpired   = "EXPIRED"
	HoldStateVerified  = "VERIFIED"
	HoldStateConsumed  = "CONSUMED"
	HoldStateCancelled = "CANCELLED"
)

// Hold represents a time-boxed, unconfirmed reservation of a booking slot
// pending phone verification.
type Hold struct {
	ID            string    `bson:"id" json:"holdId"`
	SalonID       string    `bson:"salon_id" json:"salonId"`
	ServiceID     string    `bson:"service_id" json:"serviceId"`
	Date          string    `bson:"date" json:"date"`                   // "YYYY-MM-DD"
	Time          int       `bson:"time" json:"time"`                   // slot start, minutes from midnight
	CustomerName  string    `bson:"customer_name" json:"customerName"`
	CustomerPhone string    `bson:"customer_phone" json:"customerPhone"` // E.164
	State         string    `bson:"state" json:"state"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expiresAt"`

	// Set at promotion so repeated verify calls can return the same manage URL.
	BookingID string `bson:"booking_id,omitempty" json:"-"`
	ManageURL string `bson:"manage_url,omitempty" json:"-"`
}

// ExpiredAt reports whether the hold's TTL has elapsed at the given instant.
func (h *Hold) ExpiredAt(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}
