// Package history records finished runs in a local SQLite database. It
// never holds live session state.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/f3rmion/mindvault/internal/vault"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	theme          TEXT NOT NULL,
	outcome        TEXT NOT NULL,
	solved         INTEGER NOT NULL,
	total          INTEGER NOT NULL,
	wrong_attempts INTEGER NOT NULL,
	duration_ms    INTEGER NOT NULL,
	finished_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_finished_at ON runs (finished_at DESC);
`

// Store is a run log backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers from concurrent commands
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a finished run. Recording the same session twice keeps the
// latest summary.
func (s *Store) Record(ctx context.Context, run vault.RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, theme, outcome, solved, total, wrong_attempts, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			outcome = excluded.outcome,
			solved = excluded.solved,
			total = excluded.total,
			wrong_attempts = excluded.wrong_attempts,
			duration_ms = excluded.duration_ms,
			finished_at = excluded.finished_at`,
		run.SessionID,
		string(run.Theme),
		string(run.Outcome),
		run.Solved,
		run.Total,
		run.WrongAttempts,
		run.Elapsed.Milliseconds(),
		run.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]vault.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, theme, outcome, solved, total, wrong_attempts, duration_ms, finished_at
		FROM runs
		ORDER BY finished_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []vault.RunSummary
	for rows.Next() {
		var (
			run                    vault.RunSummary
			theme, outcome         string
			durationMS, finishedMS int64
		)
		if err := rows.Scan(&run.SessionID, &theme, &outcome, &run.Solved, &run.Total,
			&run.WrongAttempts, &durationMS, &finishedMS); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Theme = vault.Theme(theme)
		run.Outcome = vault.Outcome(outcome)
		run.Elapsed = time.Duration(durationMS) * time.Millisecond
		run.FinishedAt = time.UnixMilli(finishedMS)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// Stats aggregates the whole log.
type Stats struct {
	Runs      int
	Completed int
	Fastest   time.Duration // Quickest completed run, zero if none
}

// Totals summarizes every recorded run.
func (s *Store) Totals(ctx context.Context) (Stats, error) {
	var (
		stats   Stats
		fastest sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			MIN(CASE WHEN outcome = ? THEN duration_ms END)
		FROM runs`,
		string(vault.OutcomeCompleted), string(vault.OutcomeCompleted),
	).Scan(&stats.Runs, &stats.Completed, &fastest)
	if err != nil {
		return Stats{}, fmt.Errorf("summarizing runs: %w", err)
	}
	if fastest.Valid {
		stats.Fastest = time.Duration(fastest.Int64) * time.Millisecond
	}
	return stats, nil
}
