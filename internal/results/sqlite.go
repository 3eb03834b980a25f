// SPDX-License-Identifier: MIT

package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	digits     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id       TEXT NOT NULL REFERENCES runs(run_id),
	strategy     TEXT NOT NULL,
	m            INTEGER NOT NULL,
	n            INTEGER NOT NULL,
	k            INTEGER NOT NULL,
	value_text   TEXT NOT NULL,
	value_float  REAL NOT NULL,
	elapsed_ns   INTEGER NOT NULL,
	layer_mode   TEXT NOT NULL,
	states       INTEGER NOT NULL,
	peak_entries INTEGER NOT NULL,
	peak_stack   INTEGER NOT NULL,
	digest       TEXT NOT NULL,
	err          TEXT NOT NULL,
	PRIMARY KEY (run_id, strategy, m, n, k)
);
CREATE INDEX IF NOT EXISTS results_case ON results (m, n, k);
`

// ErrNoPath indicates OpenSQLite was called without a path.
var ErrNoPath = errors.New("results: storage path is required")

// Run describes one harness invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Digits    uint
	Records   int // filled by Runs
}

// SQLiteStore persists runs and their records.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the history database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes run and its records in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, run Run, recs []*Record) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, digits) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.UTC().UnixMilli(), int64(run.Digits),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO results (
	run_id, strategy, m, n, k,
	value_text, value_float, elapsed_ns,
	layer_mode, states, peak_entries, peak_stack,
	digest, err
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare results: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err = stmt.ExecContext(ctx,
			run.ID, r.Strategy, r.M, r.N, r.K,
			r.Text, r.Float, r.Elapsed.Nanoseconds(),
			r.LayerMode, r.States, r.PeakEntries, r.PeakStack,
			DigestHex(r.Digest), r.Err,
		); err != nil {
			return fmt.Errorf("insert result %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Runs lists stored runs, newest first, with their record counts.
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT r.run_id, r.started_at, r.digits, COUNT(x.run_id)
FROM runs r LEFT JOIN results x ON x.run_id = r.run_id
GROUP BY r.run_id
ORDER BY r.started_at DESC, r.run_id
`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run     Run
			started int64
			digits  int64
		)
		if err := rows.Scan(&run.ID, &started, &digits, &run.Records); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(started).UTC()
		run.Digits = uint(digits)
		out = append(out, run)
	}
	return out, rows.Err()
}

// Records loads the records of one run ordered by case then strategy.
// Value is left nil: the stored Text is the full-precision rendering.
func (s *SQLiteStore) Records(ctx context.Context, runID string) ([]*Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT strategy, m, n, k, value_text, value_float, elapsed_ns, layer_mode,
       states, peak_entries, peak_stack, digest, err
FROM results
WHERE run_id = ?
ORDER BY m, n, k, strategy
`, runID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r := &Record{RunID: runID}
		var (
			elapsed int64
			digest  string
		)
		if err := rows.Scan(&r.Strategy, &r.M, &r.N, &r.K, &r.Text, &r.Float, &elapsed, &r.LayerMode,
			&r.States, &r.PeakEntries, &r.PeakStack, &digest, &r.Err); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.ID = RecordID(runID, r.Strategy, r.M, r.N, r.K)
		r.Elapsed = time.Duration(elapsed)
		if r.Digest, err = strconv.ParseUint(digest, 16, 64); err != nil {
			return nil, fmt.Errorf("parse digest %q: %w", digest, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
