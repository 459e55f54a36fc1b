package notification

import "context"

// Topics published on booking state transitions. Salon dashboards subscribe
// elsewhere; this side only publishes.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
)

// Publisher is a fire-and-forget event publish. Implementations log delivery
// failures but never surface them; a missed notification must not roll back a
// booking state transition.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}
