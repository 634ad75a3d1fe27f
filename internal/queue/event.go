// Package queue defines the domain events exchanged over RabbitMQ and the
// background consumer that records them in the activity log.
package queue

// Queue names.  Each event type has its own durable queue.
const (
	FriendRequestedQueue = "friend.requested"
	JournalSharedQueue   = "journal.shared"
)

// FriendRequestedEvent is published after a friend request is stored.
type FriendRequestedEvent struct {
	RequestID   uint64 `json:"request_id"`
	RequesterID uint64 `json:"requester_id"`
	RequestedID uint64 `json:"requested_id"`
	CreatedAt   string `json:"created_at"` // RFC 3339
}

// JournalSharedEvent is published when a public journal entry is written.
// The content itself is not carried; consumers only need to know it exists.
type JournalSharedEvent struct {
	EntryID   uint64 `json:"entry_id"`
	UserID    uint64 `json:"user_id"`
	UserName  string `json:"user_name"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"` // RFC 3339
}
