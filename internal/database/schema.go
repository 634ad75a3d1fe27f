package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates any missing tables.  Every statement is
// CREATE TABLE IF NOT EXISTS, so running it on each start is a no-op once
// the database exists.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements(schemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

func statements(script string) []string {
	var out []string
	for _, s := range strings.Split(script, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
