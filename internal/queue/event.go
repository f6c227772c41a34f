// Package queue defines message payloads exchanged over the message broker
// plus the publisher and the background consumer that processes them.
package queue

// Event types carried on the booking.events queue.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published when a booking is created or cancelled. It
// carries enough information for downstream consumers to log or notify
// without querying the primary store.
type BookingEvent struct {
	Type       string  `json:"type"`
	BookingID  uint64  `json:"booking_id"`
	RoomID     uint64  `json:"room_id"`
	RoomName   string  `json:"room_name"`
	UserEmail  string  `json:"user_email"`
	BookingDay string  `json:"booking_day"`
	Price      float64 `json:"price"`
	OccurredAt string  `json:"occurred_at"`
}
