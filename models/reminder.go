package models

// ReminderPayload is the queued payload for an appointment reminder SMS.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Phone     string `json:"phone"`
	SalonID   string `json:"salonId"`
	Date      string `json:"date"`
	Time      string `json:"time"` // "HH:MM" for message rendering
}

// BookingEvent is the payload published on booking state transitions.
type BookingEvent struct {
	BookingID string `json:"bookingId"`
	SalonID   string `json:"salonId"`
	Date      string `json:"date"`
	Time      int    `json:"time"`
	Status    string `json:"status"`
}
