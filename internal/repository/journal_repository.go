package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/mindful/internal/model"
)

const journalSelect = `SELECT j.id, j.user_id, j.content, j.category, j.is_public, j.created_at, u.name
	FROM journal_entries j JOIN users u ON j.user_id = u.id`

// JournalRepo persists journal entries.
type JournalRepo struct{ DB *sql.DB }

func NewJournalRepo(db *sql.DB) *JournalRepo { return &JournalRepo{DB: db} }

// Create inserts an entry and returns it with the author's name attached.
func (r *JournalRepo) Create(ctx context.Context, userID uint64, content, category string, isPublic bool) (model.JournalEntry, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO journal_entries (user_id, content, category, is_public, created_at) VALUES (?,?,?,?,?)",
		userID, content, category, isPublic, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		if isMissingParent(err) {
			return model.JournalEntry{}, ErrNotFound
		}
		return model.JournalEntry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("insert journal entry id: %w", err)
	}
	e, err := scanJournal(r.DB.QueryRowContext(ctx, journalSelect+" WHERE j.id=?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.JournalEntry{}, ErrNotFound
		}
		return model.JournalEntry{}, fmt.Errorf("read journal entry: %w", err)
	}
	return e, nil
}

// ListByUser returns the caller's own entries, newest first.
func (r *JournalRepo) ListByUser(ctx context.Context, userID uint64) ([]model.JournalEntry, error) {
	return r.list(ctx, journalSelect+" WHERE j.user_id=? ORDER BY j.created_at DESC, j.id DESC", userID)
}

// ListPublic returns every public entry, newest first, optionally filtered
// by category.
func (r *JournalRepo) ListPublic(ctx context.Context, category string) ([]model.JournalEntry, error) {
	query := journalSelect + " WHERE j.is_public=TRUE"
	var args []any
	if category != "" {
		query += " AND j.category=?"
		args = append(args, category)
	}
	return r.list(ctx, query+" ORDER BY j.created_at DESC, j.id DESC", args...)
}

// Delete removes entry id only if it belongs to userID.  Both "no such
// entry" and "someone else's entry" report ErrNotFound.
func (r *JournalRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM journal_entries WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JournalRepo) list(ctx context.Context, query string, args ...any) ([]model.JournalEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	out := []model.JournalEntry{}
	for rows.Next() {
		e, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanJournal(s scanner) (model.JournalEntry, error) {
	var e model.JournalEntry
	err := s.Scan(&e.ID, &e.UserID, &e.Content, &e.Category, &e.IsPublic, &e.CreatedAt, &e.UserName)
	return e, err
}
