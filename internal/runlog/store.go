// Package runlog records daemon run history in SQLite: one row per run with
// its process id, mode, and outcome.
package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one daemon run record.
type Run struct {
	ID        string
	PID       int
	Detached  bool
	StartedAt time.Time
	StoppedAt time.Time
	Outcome   string
}

// Run outcomes.
const (
	OutcomeRunning = "running"
	OutcomeStopped = "stopped"
	OutcomeFailed  = "failed"
)

// Open initializes or connects to the run-history database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("run database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create run database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        pid INTEGER NOT NULL,
        detached INTEGER NOT NULL,
        started_at TEXT NOT NULL,
        stopped_at TEXT,
        outcome TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Begin inserts a record for a run that just started.
func (s *Store) Begin(ctx context.Context, pid int, detached bool) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		PID:       pid,
		Detached:  detached,
		StartedAt: time.Now().UTC(),
		Outcome:   OutcomeRunning,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, pid, detached, started_at, outcome) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.PID, boolToInt(run.Detached),
		run.StartedAt.Format(time.RFC3339Nano), run.Outcome,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Finish marks a run as ended with the given outcome.
func (s *Store) Finish(ctx context.Context, id, outcome string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET stopped_at = ?, outcome = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), outcome, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: no run with id %q", id)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pid, detached, started_at, stopped_at, outcome
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var detached int
		var started string
		var stopped sql.NullString
		if err := rows.Scan(&run.ID, &run.PID, &detached, &started, &stopped, &run.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Detached = detached != 0
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse run start time: %w", err)
		}
		if stopped.Valid {
			if run.StoppedAt, err = time.Parse(time.RFC3339Nano, stopped.String); err != nil {
				return nil, fmt.Errorf("parse run stop time: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
