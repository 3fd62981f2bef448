// Package store persists the hospital domain records in Postgres.
//
// Write paths are single-statement operations: a failed call leaves no
// partial record behind, which the chat assistant relies on when it
// reports success or failure of a tool action to the patient.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Registers the "postgres" driver.
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Store wraps database operations for users, requests, tasks, shifts and
// messages.
type Store struct {
	db *sql.DB
}

// New constructs a Store from an existing sql.DB. The caller manages the
// connection lifecycle.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, url string, maxOpenConns int) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }
