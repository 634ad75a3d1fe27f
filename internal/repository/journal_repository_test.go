package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var journalCols = []string{"id", "user_id", "content", "category", "is_public", "created_at", "name"}

func TestJournalRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJournalRepo(db)

	mock.ExpectExec(`INSERT INTO journal_entries`).
		WithArgs(uint64(1), "today was ok", "reflection", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery(`FROM journal_entries j JOIN users u ON j.user_id = u.id WHERE j.id=\?`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(journalCols).
			AddRow(8, 1, "today was ok", "reflection", true, time.Now(), "A"))

	e, err := repo.Create(context.Background(), 1, "today was ok", "reflection", true)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), e.ID)
	assert.Equal(t, "A", e.UserName)
	assert.True(t, e.IsPublic)
}

func TestJournalRepo_ListPublic_CategoryFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJournalRepo(db)

	mock.ExpectQuery(`WHERE j.is_public=TRUE AND j.category=\? ORDER BY j.created_at DESC`).
		WithArgs("anxiety").
		WillReturnRows(sqlmock.NewRows(journalCols).
			AddRow(2, 5, "breathing helps", "anxiety", true, time.Now(), "E"))

	got, err := repo.ListPublic(context.Background(), "anxiety")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "E", got[0].UserName)
}

func TestJournalRepo_ListPublic_All(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJournalRepo(db)

	mock.ExpectQuery(`WHERE j.is_public=TRUE ORDER BY`).
		WillReturnRows(sqlmock.NewRows(journalCols))

	got, err := repo.ListPublic(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJournalRepo_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantErr error
	}{
		{"own entry", func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) }, nil},
		{"someone else's entry", func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) }, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewJournalRepo(db)
			tc.result(mock.ExpectExec(`DELETE FROM journal_entries WHERE id=\? AND user_id=\?`).
				WithArgs(uint64(4), uint64(1)))

			err := repo.Delete(context.Background(), 4, 1)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestJournalRepo_Delete_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJournalRepo(db)

	mock.ExpectExec(`DELETE FROM journal_entries`).WillReturnError(errors.New("boom"))
	err := repo.Delete(context.Background(), 4, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
