package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"doc2dash/internal/entry"
)

// ErrClosed is returned by Writer methods after Commit or Rollback.
var ErrClosed = errors.New("index writer closed")

const insertSQL = "INSERT OR IGNORE INTO searchIndex (name, type, path) VALUES (?, ?, ?)"

// Writer appends entries inside one transaction.
type Writer struct {
	ctx    context.Context
	tx     *sql.Tx
	insert *sql.Stmt
	done   bool
}

// Begin starts a write transaction. The context bounds every statement the
// Writer issues.
func (s *Store) Begin(ctx context.Context) (*Writer, error) {
	ctx = ensureContext(ctx)
	var tx *sql.Tx
	if err := retryOnBusy(ctx, func() error {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		return err
	}); err != nil {
		return nil, fmt.Errorf("begin index tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &Writer{ctx: ctx, tx: tx, insert: stmt}, nil
}

// Add stores e. Duplicate triples are ignored.
func (w *Writer) Add(e entry.Entry) error {
	if w.done {
		return ErrClosed
	}
	if _, err := w.insert.ExecContext(w.ctx, e.Name, e.Type.String(), e.Path); err != nil {
		return fmt.Errorf("insert %s: %w", e, err)
	}
	return nil
}

// Count returns the number of rows visible to the transaction.
func (w *Writer) Count() (int, error) {
	if w.done {
		return 0, ErrClosed
	}
	var n int
	if err := w.tx.QueryRowContext(w.ctx, "SELECT COUNT(1) FROM searchIndex").Scan(&n); err != nil {
		return 0, fmt.Errorf("count index rows: %w", err)
	}
	return n, nil
}

// Commit makes the added rows durable.
func (w *Writer) Commit() error {
	if w.done {
		return ErrClosed
	}
	w.done = true
	_ = w.insert.Close()
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

// Rollback discards the added rows. It is a no-op after Commit, so it can be
// deferred.
func (w *Writer) Rollback() error {
	if w.done {
		return nil
	}
	w.done = true
	_ = w.insert.Close()
	return w.tx.Rollback()
}
