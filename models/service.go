package models

// Service is a bookable salon service. Managed by the admin surface; read here
// only to validate hold requests and price bookings.
type Service struct {
	ID       string  `bson:"id" json:"id"`
	SalonID  string  `bson:"salon_id" json:"salonId"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Duration int     `bson:"duration" json:"duration"` // minutes
	IsActive bool    `bson:"is_active" json:"isActive"`
}
