package model

import "time"

// JournalEntry is one row of `journal_entries` joined with the author's
// name.  Public entries appear in the shared support feed.
type JournalEntry struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}
