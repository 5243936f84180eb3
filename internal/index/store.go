package index

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"doc2dash/internal/entry"
)

// FileName is the index database name inside Contents/Resources.
const FileName = "docSet.dsidx"

//go:embed schema.sql
var schemaSQL string

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store manages a docset search index backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// TypeCount is the number of rows stored for one entry type.
type TypeCount struct {
	Type  string
	Count int
}

// Open creates or connects to the index database at path and ensures the
// searchIndex table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	ctx = ensureContext(ctx)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer per docset; a single connection keeps the tx and the
	// count queries on the same handle.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := retryOnBusy(ctx, func() error {
		_, execErr := db.ExecContext(ctx, schemaSQL)
		return execErr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Count returns the number of committed rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM searchIndex").Scan(&n); err != nil {
		return 0, fmt.Errorf("count index rows: %w", err)
	}
	return n, nil
}

// CountByType returns committed row counts grouped by type, largest first.
func (s *Store) CountByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT type, COUNT(1) AS n FROM searchIndex GROUP BY type ORDER BY n DESC, type ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("count index rows by type: %w", err)
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// Entries returns every committed row in insertion order.
func (s *Store) Entries(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), "SELECT name, type, path FROM searchIndex ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list index rows: %w", err)
	}
	defer rows.Close()

	var out []entry.Entry
	for rows.Next() {
		var (
			e   entry.Entry
			typ string
		)
		if err := rows.Scan(&e.Name, &typ, &e.Path); err != nil {
			return nil, fmt.Errorf("scan index row: %w", err)
		}
		e.Type = entry.Type(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
