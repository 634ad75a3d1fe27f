package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements_SplitsEmbeddedSchema(t *testing.T) {
	stmts := statements(schemaSQL)
	require.Len(t, stmts, 5)
	for _, s := range stmts {
		assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS")
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range statements(schemaSQL) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("denied"))
	err = EnsureSchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema statement 1: denied")
}
