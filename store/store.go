// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed persistence of the last value each client picked
// for each widget. Keyed by build-time local id so values survive the
// global-id churn of re-registration.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Ducstii/SSSUtility/widget"
)

var ErrClosed = errors.New("store: closed")

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS widget_values (
    client_id  TEXT NOT NULL,
    owner_id   TEXT NOT NULL,
    local_id   INTEGER NOT NULL,
    kind       INTEGER NOT NULL,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL,    -- UnixNano
    PRIMARY KEY (client_id, owner_id, local_id)
);

CREATE INDEX IF NOT EXISTS idx_values_owner ON widget_values(owner_id);
`

// Store persists widget values. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates or opens the database at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err == sql.ErrNoRows {
		current = 0
	} else if err != nil {
		return fmt.Errorf("store: read schema version: %w", err)
	}
	if current == schemaVersion {
		return nil
	}
	if current > schemaVersion {
		return fmt.Errorf("store: database schema version %d is newer than supported %d", current, schemaVersion)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("store: update schema version: %w", err)
	}
	return nil
}

// Save upserts one value.
func (s *Store) Save(clientID, ownerID string, localID int, kind widget.Kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO widget_values (client_id, owner_id, local_id, kind, value, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		clientID, ownerID, localID, int(kind), value, time.Now().UnixNano())
	return err
}

// Values returns all saved values of one client for one owner, keyed by
// local widget id. Missing rows simply leave gaps: widgets keep defaults.
func (s *Store) Values(clientID, ownerID string) (map[int]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(
		"SELECT local_id, value FROM widget_values WHERE client_id = ? AND owner_id = ?",
		clientID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var id int
		var value string
		if err := rows.Scan(&id, &value); err != nil {
			continue
		}
		out[id] = value
	}
	return out, rows.Err()
}

// DeleteOwner drops every value of one owner, for all clients. Called when
// a plugin is permanently removed.
func (s *Store) DeleteOwner(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.db.Exec("DELETE FROM widget_values WHERE owner_id = ?", ownerID)
	return err
}

// Record implements the router's Recorder: a failed write is logged, never
// surfaced into event delivery.
func (s *Store) Record(clientID, ownerID string, localID int, kind widget.Kind, value string) {
	if err := s.Save(clientID, ownerID, localID, kind, value); err != nil {
		log.Printf("Store: save of %s/%s/%d failed: %v", clientID, ownerID, localID, err)
	}
}

// Close closes the database. Subsequent calls are no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
