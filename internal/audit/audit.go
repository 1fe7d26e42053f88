// Package audit records every tool invocation in a local SQLite file:
// operation name, an echo of the inputs, outcome and duration.
//
// Auditing is best-effort infrastructure. The composition root disables
// it with a warning when the database cannot be opened, and a failed
// Record never surfaces to the tool caller.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	tool        TEXT NOT NULL,
	input       TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
`

// Entry is one recorded tool invocation.
type Entry struct {
	ID       int64         `json:"id"`
	Tool     string        `json:"tool"`
	Input    string        `json:"input"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	At       string        `json:"at"`
}

// Log is the SQLite-backed invocation log.
type Log struct {
	db *sql.DB
}

// Open creates (or reuses) the audit database at path and ensures the
// schema exists.
func Open(path string) (*Log, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing audit schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Record inserts one invocation row. The timestamp is assigned here.
func (l *Log) Record(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO invocations (tool, input, status, duration_ms, at) VALUES (?, ?, ?, ?, ?)`,
		e.Tool, e.Input, e.Status, e.Duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording invocation of %s: %w", e.Tool, err)
	}
	return nil
}

// Recent returns the latest n invocations, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, tool, input, status, duration_ms, at FROM invocations ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Tool, &e.Input, &e.Status, &ms, &e.At); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
