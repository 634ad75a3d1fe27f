package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepo_CreateRequest(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFriendRepo(db)

	mock.ExpectExec(`INSERT INTO friend_requests \(requester_id, requested_id, created_at\)`).
		WithArgs(uint64(1), uint64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	fr, err := repo.CreateRequest(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), fr.ID)
	assert.Equal(t, uint64(2), fr.RequestedID)
}

func TestFriendRepo_CreateRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"duplicate", errDuplicate, ErrFriendRequestExists},
		{"unknown user", errMissingParent, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewFriendRepo(db)
			mock.ExpectExec(`INSERT INTO friend_requests`).WillReturnError(tc.dbErr)

			_, err := repo.CreateRequest(context.Background(), 1, 2)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFriendRepo_RequestedIDs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFriendRepo(db)

	mock.ExpectQuery(`SELECT requested_id FROM friend_requests WHERE requester_id=\?`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"requested_id"}).AddRow(2).AddRow(7))

	ids, err := repo.RequestedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 7}, ids)
}
