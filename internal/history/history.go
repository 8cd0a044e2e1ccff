// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records prediction results in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDatabaseError = errors.New("database error")
	ErrInvalidPath   = errors.New("invalid path")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    intent TEXT NOT NULL,
    confidence REAL NOT NULL,
    model_id TEXT,
    workspace_id TEXT,
    created_at INTEGER NOT NULL  -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
CREATE INDEX IF NOT EXISTS idx_predictions_intent ON predictions(intent);
`

// =============================================================================
// TYPES
// =============================================================================

// Entry is one recorded prediction.
type Entry struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Intent      string    `json:"intent"`
	Confidence  float64   `json:"confidence"`
	ModelID     string    `json:"model_id,omitempty"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the prediction history database.
type Store struct {
	db *sql.DB

	// MaxEntries bounds the table size (0 = unlimited). Oldest rows
	// are pruned after each insert.
	MaxEntries int
}

// =============================================================================
// OPEN AND CLOSE
// =============================================================================

// Open opens (or creates) the history database at path.
func Open(path string, maxEntries int) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrInvalidPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, MaxEntries: maxEntries}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// RECORDING
// =============================================================================

// Record inserts a prediction and prunes old rows past MaxEntries.
func (s *Store) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (text, intent, confidence, model_id, workspace_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Text, e.Intent, e.Confidence, e.ModelID, e.WorkspaceID, createdAt.Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if s.MaxEntries > 0 {
		s.prune(ctx)
	}

	return nil
}

// prune deletes the oldest rows beyond MaxEntries. Failures are
// non-fatal since the next insert retries.
func (s *Store) prune(ctx context.Context) {
	s.db.ExecContext(ctx,
		`DELETE FROM predictions WHERE id NOT IN (
		     SELECT id FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?
		 )`, s.MaxEntries)
}

// =============================================================================
// QUERIES
// =============================================================================

// Recent returns up to limit predictions, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, intent, confidence, model_id, workspace_id, created_at
		 FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ByIntent returns recent predictions classified with an intent.
func (s *Store) ByIntent(ctx context.Context, intent string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, intent, confidence, model_id, workspace_id, created_at
		 FROM predictions WHERE intent = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		intent, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of recorded predictions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// Clear deletes all recorded predictions.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM predictions`); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Text, &e.Intent, &e.Confidence, &e.ModelID, &e.WorkspaceID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
