package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tobenna/room-booking/internal/model"
)

// RoomRepo provides read access to rooms plus the idempotent availability
// setter. Rooms themselves are created and edited elsewhere; the only field
// this service ever writes is the availability flag.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, description, image, price, availability, created_at`

func scanRoom(s interface{ Scan(...interface{}) error }) (model.Room, error) {
	var r model.Room
	err := s.Scan(&r.ID, &r.Name, &r.Description, &r.Image, &r.Price, &r.Availability, &r.CreatedAt)
	return r, err
}

// List returns all rooms in insertion order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return r.query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
}

// ListByPrice returns all rooms ordered by ascending price.
func (r *RoomRepo) ListByPrice(ctx context.Context) ([]model.Room, error) {
	return r.query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY price ASC, id`)
}

// Latest returns the most recently added rooms, newest first.
func (r *RoomRepo) Latest(ctx context.Context, limit int) ([]model.Room, error) {
	return r.query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id DESC LIMIT ?`, limit)
}

// GetByID returns a single room or ErrNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// SetAvailability sets a room's availability flag. Setting the flag to the
// value it already holds is a no-op, not an error; a missing room is
// ErrNotFound. RowsAffected cannot distinguish the two on its own, so a
// zero-row update falls back to an existence probe.
func (r *RoomRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET availability = ? WHERE id = ?`, available, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
