package models

import "time"

// ManagementToken grants token-bearer access to view or cancel one booking
// without login. Minted once at promotion, never rotated, never expires.
type ManagementToken struct {
	Token     string    `bson:"token" json:"-"`
	BookingID string    `bson:"booking_id" json:"bookingId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
