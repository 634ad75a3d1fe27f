package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/mindful/internal/model"
)

const moodColumns = "id,user_id,emoji,mood,DATE_FORMAT(date,'%Y-%m-%d'),created_at,updated_at"

// MoodRepo persists daily moods.
type MoodRepo struct{ DB *sql.DB }

func NewMoodRepo(db *sql.DB) *MoodRepo { return &MoodRepo{DB: db} }

// Upsert stores the mood for (userID, date).  The UNIQUE(user_id, date)
// index turns a second save for the same day into an update, so there is
// never more than one row per user per day and the latest save wins.
func (r *MoodRepo) Upsert(ctx context.Context, userID uint64, emoji, mood, date string) (model.Mood, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO moods (user_id, emoji, mood, date) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE emoji=VALUES(emoji), mood=VALUES(mood), updated_at=CURRENT_TIMESTAMP`,
		userID, emoji, mood, date)
	if err != nil {
		if isMissingParent(err) {
			return model.Mood{}, ErrNotFound
		}
		return model.Mood{}, fmt.Errorf("upsert mood: %w", err)
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+moodColumns+" FROM moods WHERE user_id=? AND date=? LIMIT 1", userID, date)
	var m model.Mood
	if err := row.Scan(&m.ID, &m.UserID, &m.Emoji, &m.Mood, &m.Date, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Mood{}, ErrNotFound
		}
		return model.Mood{}, fmt.Errorf("read mood: %w", err)
	}
	return m, nil
}

// ListByUser returns all moods of a user, newest date first.
func (r *MoodRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Mood, error) {
	return r.list(ctx, "SELECT "+moodColumns+" FROM moods WHERE user_id=? ORDER BY date DESC", userID)
}

// ListBetween returns the moods of a user with from <= date <= to
// (YYYY-MM-DD bounds), oldest first.
func (r *MoodRepo) ListBetween(ctx context.Context, userID uint64, from, to string) ([]model.Mood, error) {
	return r.list(ctx,
		"SELECT "+moodColumns+" FROM moods WHERE user_id=? AND date BETWEEN ? AND ? ORDER BY date ASC",
		userID, from, to)
}

func (r *MoodRepo) list(ctx context.Context, query string, args ...any) ([]model.Mood, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	out := []model.Mood{}
	for rows.Next() {
		var m model.Mood
		if err := rows.Scan(&m.ID, &m.UserID, &m.Emoji, &m.Mood, &m.Date, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mood: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
