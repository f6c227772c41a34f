package repository

import (
	"context"
	"database/sql"

	"github.com/tobenna/room-booking/internal/model"
)

// ReviewRepo persists room reviews. Reviews are plain passthrough documents
// keyed by room id; they carry no availability semantics.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, room_id, user_email, user_name, rating, comment, created_at`

// Insert stores a new review and populates its generated ID and creation
// timestamp.
func (r *ReviewRepo) Insert(ctx context.Context, rev *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (room_id, user_email, user_name, rating, comment) VALUES (?, ?, ?, ?, ?)`,
		rev.RoomID, rev.UserEmail, rev.UserName, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM reviews WHERE id = ?`, rev.ID).Scan(&rev.CreatedAt)
}

// Latest returns the most recently written reviews, newest first.
func (r *ReviewRepo) Latest(ctx context.Context, limit int) ([]model.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id DESC LIMIT ?`, limit)
}

// ListByRoom returns all reviews attached to a room, newest first.
func (r *ReviewRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE room_id = ? ORDER BY id DESC`, roomID)
}

func (r *ReviewRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.RoomID, &rev.UserEmail, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
