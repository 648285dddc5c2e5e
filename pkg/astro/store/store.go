// Package store implements the Knowledge Store (spec.md §4.4): durable,
// queryable SQLite storage for rules and source books, with a
// single-writer discipline (spec.md §5) and an export/import bundle
// format for round-tripping a filtered subset of the store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a *sql.DB with the schema and write-serialization
// discipline spec.md §5 requires: "Writes are serialized via a
// single-writer discipline (one in-flight transaction)."
type Store struct {
	db *sql.DB

	// writeMu serializes every write transaction. Reads run through the
	// normal connection pool and observe only committed state.
	writeMu sync.Mutex
}

// Open creates or opens a SQLite-backed store at path, applying the
// pragmas needed for a single-writer, durable workload.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// A single logical writer: one open connection avoids SQLITE_BUSY
	// races across goroutines, matching the core's single-threaded
	// cooperative scheduling model.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: apply %s: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection. Safe to call on a nil Store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withWriteTx runs fn inside a single serialized write transaction,
// committing on success and rolling back on error or panic.
func (s *Store) withWriteTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}
