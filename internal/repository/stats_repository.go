package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/mindful/internal/model"
)

// StatsRepo counts a user's records.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Counts returns per-table row counts and the join date in one round trip.
func (r *StatsRepo) Counts(ctx context.Context, userID uint64) (model.Counts, error) {
	var c model.Counts
	err := r.DB.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM journal_entries WHERE user_id=?),
			(SELECT COUNT(*) FROM moods WHERE user_id=?),
			(SELECT COUNT(*) FROM gratitudes WHERE user_id=?),
			join_date
		FROM users WHERE id=?`,
		userID, userID, userID, userID).Scan(&c.Journal, &c.Mood, &c.Gratitude, &c.JoinDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Counts{}, ErrNotFound
		}
		return model.Counts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}
