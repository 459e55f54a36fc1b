package models

import "time"

// Customer is a salon-scoped customer record, unique per (salon, phone).
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	SalonID   string    `bson:"salon_id" json:"salonId"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"` // E.164
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
