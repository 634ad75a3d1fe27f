package model

import "time"

// Gratitude is one row of `gratitudes`.
type Gratitude struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}
