package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/mindful/internal/model"
)

// GratitudeRepo persists gratitude notes.  Notes are append-only.
type GratitudeRepo struct{ DB *sql.DB }

func NewGratitudeRepo(db *sql.DB) *GratitudeRepo { return &GratitudeRepo{DB: db} }

// Create appends a note for userID on date (YYYY-MM-DD).
func (r *GratitudeRepo) Create(ctx context.Context, userID uint64, text, date string) (model.Gratitude, error) {
	g := model.Gratitude{
		UserID:    userID,
		Text:      text,
		Date:      date,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO gratitudes (user_id, text, date, created_at) VALUES (?,?,?,?)",
		g.UserID, g.Text, g.Date, g.CreatedAt)
	if err != nil {
		if isMissingParent(err) {
			return model.Gratitude{}, ErrNotFound
		}
		return model.Gratitude{}, fmt.Errorf("insert gratitude: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Gratitude{}, fmt.Errorf("insert gratitude id: %w", err)
	}
	g.ID = uint64(id)
	return g, nil
}

// List returns a user's notes, newest first, optionally restricted to one
// date.  An empty date means all dates.
func (r *GratitudeRepo) List(ctx context.Context, userID uint64, date string) ([]model.Gratitude, error) {
	query := "SELECT id,user_id,text,DATE_FORMAT(date,'%Y-%m-%d'),created_at FROM gratitudes WHERE user_id=?"
	args := []any{userID}
	if date != "" {
		query += " AND date=?"
		args = append(args, date)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gratitudes: %w", err)
	}
	defer rows.Close()

	out := []model.Gratitude{}
	for rows.Next() {
		var g model.Gratitude
		if err := rows.Scan(&g.ID, &g.UserID, &g.Text, &g.Date, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gratitude: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
