// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of remote tool calls in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kirsle/configdir"
	_ "github.com/mattn/go-sqlite3"

	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

const (
	appDir       = "tweekit"
	dbFile       = "history.db"
	defaultLimit = 20
	timestampFmt = "2006-01-02T15:04:05.000000000Z07:00"
)

// DefaultPath returns <user config dir>/tweekit/history.db.
func DefaultPath() string {
	return filepath.Join(configdir.LocalConfig(appDir), dbFile)
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path (DefaultPath when
// empty) and creates the schema if it does not exist.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool TEXT NOT NULL,
			input TEXT NOT NULL,
			inext TEXT,
			outfmt TEXT,
			status TEXT NOT NULL,
			error TEXT,
			input_bytes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_created_at ON calls(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e. A zero CreatedAt is replaced with the current time.
func (s *Store) Record(ctx context.Context, e types.HistoryEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calls (tool, input, inext, outfmt, status, error, input_bytes, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Tool, e.Input, e.InputExt, e.OutFmt, string(e.Status), e.Error,
		e.InputBytes, e.Duration.Milliseconds(), e.CreatedAt.UTC().Format(timestampFmt),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, input, inext, outfmt, status, error, input_bytes, duration_ms, created_at
		 FROM calls ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var (
			e                  types.HistoryEntry
			inext, outfmt, msg sql.NullString
			status, createdAt  string
			durationMS         int64
		)
		if err := rows.Scan(&e.ID, &e.Tool, &e.Input, &inext, &outfmt, &status, &msg,
			&e.InputBytes, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.InputExt = inext.String
		e.OutFmt = outfmt.String
		e.Error = msg.String
		e.Status = types.CallStatus(status)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		ts, err := time.Parse(timestampFmt, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", createdAt, err)
		}
		e.CreatedAt = ts
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
