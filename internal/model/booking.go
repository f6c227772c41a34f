package model

import "time"

// Booking records that a user holds a room for a given day. UserEmail is
// the owning identity and always equals the email of the session that
// created the booking. BookingDay is a calendar date in YYYY-MM-DD form
// and is the only mutable field after creation.
type Booking struct {
	ID         uint64    `json:"id"`
	RoomID     uint64    `json:"room_id"`
	UserEmail  string    `json:"user_email"`
	BookingDay string    `json:"booking_day"`
	RoomName   string    `json:"room_name,omitempty"`
	Price      float64   `json:"price,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
