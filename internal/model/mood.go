package model

import "time"

// Mood is one row of `moods`.  (UserID, Date) is unique: saving a mood for a
// day that already has one replaces emoji and mood in place.
type Mood struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Emoji     string    `json:"emoji"`
	Mood      string    `json:"mood"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
