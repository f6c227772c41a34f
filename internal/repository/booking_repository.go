package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tobenna/room-booking/internal/model"
)

// BookingRepo persists bookings and keeps the room availability flag
// consistent with them. Creating and cancelling a booking each run in a
// single transaction that touches both tables, so no client-visible window
// exists where a booking is active but its room still reads as available.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, room_id, user_email, booking_day, room_name, price, created_at`

func scanBooking(s interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var b model.Booking
	err := s.Scan(&b.ID, &b.RoomID, &b.UserEmail, &b.BookingDay, &b.RoomName, &b.Price, &b.CreatedAt)
	return b, err
}

// Create inserts a booking and flips the referenced room's availability to
// false as one atomic compare-and-set. The conditional UPDATE succeeds only
// when the room is currently available; when it touches no row, an existence
// probe decides between ErrNotFound (no such room) and ErrConflict (lost the
// race to a concurrent booking). On success the booking's ID, room snapshot
// fields and creation time are populated on the passed record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE rooms SET availability = FALSE WHERE id = ? AND availability = TRUE`, b.RoomID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, b.RoomID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}

	// Snapshot display fields so the booking stays readable even if the room
	// is later edited.
	if err := tx.QueryRowContext(ctx,
		`SELECT name, price FROM rooms WHERE id = ?`, b.RoomID).Scan(&b.RoomName, &b.Price); err != nil {
		return err
	}

	ins, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (room_id, user_email, booking_day, room_name, price) VALUES (?, ?, ?, ?, ?)`,
		b.RoomID, b.UserEmail, b.BookingDay, b.RoomName, b.Price)
	if err != nil {
		return err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Query back to populate the DB-assigned creation timestamp.
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a booking and releases its room in the same transaction.
// The room flips back to available only when no other active booking still
// references it. Unknown booking ids yield ErrNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var roomID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT room_id FROM bookings WHERE id = ? FOR UPDATE`, id).Scan(&roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET availability = TRUE
		 WHERE id = ? AND NOT EXISTS (SELECT 1 FROM bookings WHERE room_id = ?)`,
		roomID, roomID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single booking or ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByEmail returns all bookings owned by the given identity, newest
// first. When none exist an empty slice is returned.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_email = ? ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDay replaces the booking_day field on an existing booking. No other
// column is touched. Unknown ids yield ErrNotFound; writing the same day
// again is a no-op.
func (r *BookingRepo) UpdateDay(ctx context.Context, id uint64, day string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET booking_day = ? WHERE id = ?`, day, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
