// Package history persists check runs to a local SQLite database so trends
// can be compared across invocations.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fendlabs/fend-sentry/pkg/report"
)

// Run is one recorded check.
type Run struct {
	ID           string    `json:"id"`
	App          string    `json:"app"`
	Environment  string    `json:"environment"`
	Status       string    `json:"status"`
	TotalEntries int       `json:"total_entries"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	GroupCount   int       `json:"group_count"`
	TopSignature string    `json:"top_signature,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// Store wraps the SQLite database holding check history.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	app TEXT NOT NULL,
	environment TEXT NOT NULL,
	status TEXT NOT NULL,
	total_entries INTEGER NOT NULL,
	error_count INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	group_count INTEGER NOT NULL,
	top_signature TEXT,
	checked_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_checked_at ON runs(checked_at);
`

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordCheck saves the outcome of one check run.
func (s *Store) RecordCheck(ctx context.Context, rep *report.Report) (*Run, error) {
	run := &Run{
		ID:           uuid.NewString(),
		App:          rep.App,
		Environment:  rep.Environment,
		Status:       string(rep.Status),
		TotalEntries: rep.Summary.TotalEntries,
		ErrorCount:   rep.ErrorCount(),
		WarningCount: rep.WarningCount(),
		GroupCount:   len(rep.Summary.ErrorGroups),
		CheckedAt:    rep.GeneratedAt,
	}
	if len(rep.Summary.ErrorGroups) > 0 {
		run.TopSignature = rep.Summary.ErrorGroups[0].Signature
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, app, environment, status, total_entries,
			error_count, warning_count, group_count, top_signature, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.App, run.Environment, run.Status, run.TotalEntries,
		run.ErrorCount, run.WarningCount, run.GroupCount, run.TopSignature, run.CheckedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record check: %w", err)
	}

	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, app, environment, status, total_entries,
			error_count, warning_count, group_count, top_signature, checked_at
		FROM runs
		ORDER BY checked_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var topSignature sql.NullString
		if err := rows.Scan(&run.ID, &run.App, &run.Environment, &run.Status,
			&run.TotalEntries, &run.ErrorCount, &run.WarningCount,
			&run.GroupCount, &topSignature, &run.CheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.TopSignature = topSignature.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
