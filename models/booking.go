package models

import "time"

// Booking statuses. Pending and Confirmed bookings occupy their slot.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusNoShow    = "NO_SHOW"
)

// Booking represents a persisted booking record.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	SalonID    string    `bson:"salon_id" json:"salonId"`
	ServiceID  string    `bson:"service_id" json:"serviceId"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	Date       string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time       int       `bson:"time" json:"time"` // slot start, minutes from midnight
	Status     string    `bson:"status" json:"status"`
	TotalPrice float64   `bson:"total_price" json:"totalPrice"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// SlotBlockingStatuses are the booking statuses that make a slot unavailable.
var SlotBlockingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}
