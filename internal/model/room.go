package model

import "time"

// Room is a bookable unit. Availability is the derived flag the booking
// engine keeps in sync with active bookings: false exactly when an active
// booking references the room. Descriptive fields are owned by the room
// management surface and pass through untouched.
type Room struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Price        float64   `json:"price"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}
