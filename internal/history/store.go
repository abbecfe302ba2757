// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of assignment runs so a past
// distribution can be looked up after the target directory has been
// cleared by a later run.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftask/pkg/types"
)

// DefaultDBPath is used when HistoryConfig.DBPath is empty.
const DefaultDBPath = ".pdftask/history.db"

// timeLayout is fixed-width so started_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// its parent directory and schema if they do not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			names_file TEXT,
			source_dir TEXT,
			target_dir TEXT,
			log_path TEXT,
			mode TEXT,
			assigned INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record saves run and its records in a single transaction. An empty
// run.ID is filled with a new UUID and a zero StartedAt with the current
// time; the stored ID is returned.
func (s *Store) Record(ctx context.Context, run types.AssignmentRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, names_file, source_dir, target_dir, log_path, mode, assigned, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout),
		run.NamesFile, run.SourceDir, run.TargetDir, run.LogPath,
		string(run.Mode), run.Assigned, run.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, seq, name, source, target) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range run.Records {
		if _, err := stmt.ExecContext(ctx, run.ID, i, rec.Name, rec.Source, rec.Target); err != nil {
			return "", fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// List returns runs newest first, without their records. A limit of zero
// or less uses the configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]types.AssignmentRun, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, names_file, source_dir, target_dir, log_path, mode, assigned, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.AssignmentRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given ID together with its records in
// assignment order.
func (s *Store) Get(ctx context.Context, id string) (types.AssignmentRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, names_file, source_dir, target_dir, log_path, mode, assigned, failed
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.AssignmentRun{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return types.AssignmentRun{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, source, target FROM records WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return types.AssignmentRun{}, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec types.AssignmentRecord
		if err := rows.Scan(&rec.Name, &rec.Source, &rec.Target); err != nil {
			return types.AssignmentRun{}, fmt.Errorf("scanning record: %w", err)
		}
		run.Records = append(run.Records, rec)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.AssignmentRun, error) {
	var (
		run     types.AssignmentRun
		started string
		mode    string
	)
	err := sc.Scan(&run.ID, &started, &run.NamesFile, &run.SourceDir, &run.TargetDir,
		&run.LogPath, &mode, &run.Assigned, &run.Failed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scanning run: %w", err)
	}
	run.Mode = types.SamplingMode(mode)
	if t, parseErr := time.Parse(timeLayout, started); parseErr == nil {
		run.StartedAt = t
	}
	return run, nil
}
