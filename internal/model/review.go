package model

import "time"

// Review is user feedback attached to a room. Reviews never participate in
// the availability invariant; they only reference a room id.
type Review struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
