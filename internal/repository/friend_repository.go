package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/mindful/internal/model"
)

// FriendRepo persists friend requests.
type FriendRepo struct{ DB *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{DB: db} }

// CreateRequest records that requesterID asked requestedID.  A repeated
// request hits UNIQUE(requester_id, requested_id) and yields
// ErrFriendRequestExists; an unknown requestedID yields ErrNotFound.
func (r *FriendRepo) CreateRequest(ctx context.Context, requesterID, requestedID uint64) (model.FriendRequest, error) {
	fr := model.FriendRequest{
		RequesterID: requesterID,
		RequestedID: requestedID,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO friend_requests (requester_id, requested_id, created_at) VALUES (?,?,?)",
		fr.RequesterID, fr.RequestedID, fr.CreatedAt)
	if err != nil {
		switch {
		case isDuplicateKey(err):
			return model.FriendRequest{}, ErrFriendRequestExists
		case isMissingParent(err):
			return model.FriendRequest{}, ErrNotFound
		}
		return model.FriendRequest{}, fmt.Errorf("insert friend request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FriendRequest{}, fmt.Errorf("insert friend request id: %w", err)
	}
	fr.ID = uint64(id)
	return fr, nil
}

// RequestedIDs lists the users requesterID has sent requests to.
func (r *FriendRepo) RequestedIDs(ctx context.Context, requesterID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT requested_id FROM friend_requests WHERE requester_id=? ORDER BY id", requesterID)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
