// Package booking implements the engine that keeps room availability
// consistent with active bookings. Every mutating operation resolves the
// caller's verified identity against the booking it touches; the store is
// the only shared mutable resource and the engine holds no state of its own
// across requests.
package booking

import (
	"context"
	"log"
	"time"

	"github.com/tobenna/room-booking/internal/auth"
	"github.com/tobenna/room-booking/internal/model"
	"github.com/tobenna/room-booking/internal/queue"
)

// BookingStore is the narrow view of the document store the engine needs
// for bookings. Create and Delete are atomic with the availability flip on
// the referenced room: Create fails with ErrConflict when the room is not
// available, ErrNotFound when it does not exist.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]model.Booking, error)
	UpdateDay(ctx context.Context, id uint64, day string) error
}

// RoomStore exposes the idempotent availability setter. The engine is the
// only caller; nothing else writes the flag.
type RoomStore interface {
	SetAvailability(ctx context.Context, id uint64, available bool) error
}

// EventPublisher pushes booking events to the broker. Publishing is
// best-effort and never fails the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// Engine orchestrates booking creation and cancellation against the store.
type Engine struct {
	bookings BookingStore
	rooms    RoomStore
	events   EventPublisher // may be nil; events are then dropped
}

// NewEngine constructs an Engine. Both stores are required; the publisher
// is optional.
func NewEngine(bookings BookingStore, rooms RoomStore, events EventPublisher) *Engine {
	if bookings == nil || rooms == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{bookings: bookings, rooms: rooms, events: events}
}

// Create books a room for the caller. The owning identity always comes from
// the verified claim: a payload that asserts a different owner is rejected
// with auth.ErrForbidden before the store is touched. The store call inserts
// the booking and flips the room's availability in one conditional write, so
// of two concurrent creates on the same free room exactly one succeeds and
// the other sees repository.ErrConflict.
func (e *Engine) Create(ctx context.Context, claims auth.Claims, b *model.Booking) error {
	if b.UserEmail == "" {
		b.UserEmail = claims.Email
	}
	if err := auth.RequireOwner(claims, b.UserEmail); err != nil {
		return err
	}
	if err := e.bookings.Create(ctx, b); err != nil {
		return err
	}
	e.emit(ctx, queue.EventBookingCreated, b)
	return nil
}

// Cancel deletes a booking by id after verifying that the caller owns it.
// The ownership lookup runs first, so a foreign booking yields
// auth.ErrForbidden and an unknown id repository.ErrNotFound. The delete
// releases the room's availability in the same store transaction.
func (e *Engine) Cancel(ctx context.Context, claims auth.Claims, id uint64) error {
	b, err := e.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(claims, b.UserEmail); err != nil {
		return err
	}
	if err := e.bookings.Delete(ctx, id); err != nil {
		return err
	}
	e.emit(ctx, queue.EventBookingCancelled, b)
	return nil
}

// ListByOwner returns all bookings owned by the given email, guarded
// against the caller's claim: requesting someone else's scope is
// auth.ErrForbidden regardless of whether that scope has bookings.
func (e *Engine) ListByOwner(ctx context.Context, claims auth.Claims, email string) ([]model.Booking, error) {
	if err := auth.RequireOwner(claims, email); err != nil {
		return nil, err
	}
	return e.bookings.ListByEmail(ctx, email)
}

// UpdateDay replaces the booking date on a booking the caller owns. No
// other field changes and availability is untouched.
func (e *Engine) UpdateDay(ctx context.Context, claims auth.Claims, id uint64, day string) error {
	b, err := e.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(claims, b.UserEmail); err != nil {
		return err
	}
	return e.bookings.UpdateDay(ctx, id, day)
}

// SetAvailability idempotently sets a room's availability flag. Kept for
// client compatibility with the old two-step flow; create and cancel no
// longer depend on it.
func (e *Engine) SetAvailability(ctx context.Context, roomID uint64, available bool) error {
	return e.rooms.SetAvailability(ctx, roomID, available)
}

func (e *Engine) emit(ctx context.Context, eventType string, b *model.Booking) {
	if e.events == nil {
		return
	}
	ev := queue.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		UserEmail:  b.UserEmail,
		BookingDay: b.BookingDay,
		Price:      b.Price,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.events.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s failed: %v", eventType, err)
	}
}
