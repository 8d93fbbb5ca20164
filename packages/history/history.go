// Package history persists finished runs into a local SQLite database so
// past suite results can be listed and re-rendered without the original
// results files.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/stepline/stepline/packages/results"
)

const queryTimeout = 30 * time.Second

// Store is a handle to the run history database.
type Store struct {
	db *sql.DB
}

// RunRecord is one row of the run listing.
type RunRecord struct {
	ID          string
	Suite       string
	Environment string
	Time        string
	Total       int
	Passed      int
	Failed      int
	Skipped     int
	DurationMs  float64
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			suite       TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL DEFAULT '',
			time        TEXT NOT NULL,
			total       INTEGER NOT NULL,
			passed      INTEGER NOT NULL,
			failed      INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			duration_ms REAL NOT NULL,
			document    TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun inserts (or replaces, for re-imports) one finished run.
func (s *Store) SaveRun(doc *results.Document) error {
	if doc.RunID == "" {
		return fmt.Errorf("results document has no run id")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding run document: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, suite, environment, time, total, passed, failed, skipped, duration_ms, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID, doc.Suite, doc.Environment, doc.Time,
		doc.Summary.Total, doc.Summary.Passed, doc.Summary.Failed, doc.Summary.Skipped,
		doc.Duration, string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", doc.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, suite, environment, time, total, passed, failed, skipped, duration_ms
		FROM runs ORDER BY time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Suite, &r.Environment, &r.Time,
			&r.Total, &r.Passed, &r.Failed, &r.Skipped, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

// GetRun fetches the full document of one run by id.
func (s *Store) GetRun(id string) (*results.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM runs WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching run %s: %w", id, err)
	}

	var doc results.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return &doc, nil
}
