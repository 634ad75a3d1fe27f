package model

import "time"

// FriendRequest is one row of `friend_requests`.  A requester can ask a
// given user only once.
type FriendRequest struct {
	ID          uint64    `json:"id"`
	RequesterID uint64    `json:"requester_id"`
	RequestedID uint64    `json:"requested_id"`
	CreatedAt   time.Time `json:"created_at"`
}
