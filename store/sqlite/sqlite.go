/*
Package sqlite persists batch runs and per-record calculation results.

PURPOSE:
  The engine itself is stateless; what survives a batch run is the audit
  trail. Every run gets a row, every record in the run gets a result row
  carrying the full intermediate breakdown as JSON alongside the queryable
  columns (entitlement, eligibility, failure kind). In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  runs:    One row per batch run with its counters
  results: One row per evaluated household-year, success or failure

AMOUNT STORAGE:
  Monetary columns are stored as decimal strings, never as REAL. The
  breakdown JSON round-trips through the result DTO so a stored result
  reproduces the computed one exactly.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL
  (Write-Ahead Logging) so readers do not block the single writer.

USAGE:
  store, err := sqlite.New("./data/entitlements.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  err = store.SaveRun(ctx, summary)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - batch/runner.go: Produces the summaries this store persists
  - entitlement/types.go: The result being serialized
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/entitlement-engine/batch"
	"github.com/warp/entitlement-engine/statute"
)

// Store persists batch runs and their calculation results.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Batch runs
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		total INTEGER NOT NULL,
		computed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		warned INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Per-record outcomes; result_json is NULL for failed records
	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		student_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		eligible BOOLEAN,
		entitlement TEXT,
		failure_kind TEXT,
		error TEXT,
		result_json TEXT,
		created_at TEXT NOT NULL,
		PRIMARY KEY (run_id, student_id, year)
	);

	-- Student history lookups (latest-result hot path)
	CREATE INDEX IF NOT EXISTS idx_results_student
		ON results(student_id, year, created_at DESC);

	CREATE INDEX IF NOT EXISTS idx_results_failures
		ON results(run_id) WHERE failure_kind IS NOT NULL;
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN PERSISTENCE
// =============================================================================

// RunRecord is a stored batch run header.
type RunRecord struct {
	ID        string
	Total     int
	Computed  int
	Failed    int
	Warned    int
	CreatedAt time.Time
}

// ResultRecord is one stored outcome. ResultJSON is empty for failures.
type ResultRecord struct {
	RunID       string
	StudentID   string
	Year        statute.Year
	Eligible    bool
	Entitlement string
	FailureKind string
	Error       string
	ResultJSON  string
	CreatedAt   time.Time
}

// SaveRun persists a batch summary and all of its outcomes atomically.
func (s *Store) SaveRun(ctx context.Context, summary batch.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, total, computed, failed, warned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Total, summary.Computed, summary.Failed,
		summary.Warned, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, o := range summary.Outcomes {
		if err := insertOutcome(ctx, tx, summary.RunID, o, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertOutcome(ctx context.Context, tx *sql.Tx, runID string, o batch.Outcome, now string) error {
	query := `
		INSERT INTO results
		(run_id, student_id, year, eligible, entitlement, failure_kind, error, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, student_id, year) DO UPDATE SET
			eligible = excluded.eligible,
			entitlement = excluded.entitlement,
			failure_kind = excluded.failure_kind,
			error = excluded.error,
			result_json = excluded.result_json
	`

	if o.Err != nil {
		_, err := tx.ExecContext(ctx, query,
			runID, o.StudentID, int(o.Year),
			nil, nil, string(o.Kind), o.Err.Error(), nil, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert failed outcome: %w", err)
		}
		return nil
	}

	resultJSON, err := json.Marshal(o.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = tx.ExecContext(ctx, query,
		runID, o.StudentID, int(o.Year),
		o.Result.Eligible, o.Result.Entitlement.Value.String(),
		nil, nil, string(resultJSON), now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outcome: %w", err)
	}
	return nil
}

// GetRun retrieves a run header by ID. Returns nil when not found.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r RunRecord
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, total, computed, failed, warned, created_at FROM runs WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Total, &r.Computed, &r.Failed, &r.Warned, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, total, computed, failed, warned, created_at FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Total, &r.Computed, &r.Failed, &r.Warned, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// =============================================================================
// RESULT QUERIES
// =============================================================================

// GetResults returns every outcome of a run in student order.
func (s *Store) GetResults(ctx context.Context, runID string) ([]ResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT run_id, student_id, year, eligible, entitlement, failure_kind, error, result_json, created_at
		FROM results
		WHERE run_id = ?
		ORDER BY student_id ASC, year ASC
	`

	return s.queryResults(ctx, query, runID)
}

// GetStudentHistory returns every stored result for one student across
// all runs, newest first.
func (s *Store) GetStudentHistory(ctx context.Context, studentID string) ([]ResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT run_id, student_id, year, eligible, entitlement, failure_kind, error, result_json, created_at
		FROM results
		WHERE student_id = ?
		ORDER BY created_at DESC, year DESC
	`

	return s.queryResults(ctx, query, studentID)
}

// GetFailures returns only the failed outcomes of a run.
func (s *Store) GetFailures(ctx context.Context, runID string) ([]ResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT run_id, student_id, year, eligible, entitlement, failure_kind, error, result_json, created_at
		FROM results
		WHERE run_id = ? AND failure_kind IS NOT NULL
		ORDER BY student_id ASC
	`

	return s.queryResults(ctx, query, runID)
}

func (s *Store) queryResults(ctx context.Context, query string, args ...any) ([]ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []ResultRecord
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResult(rows *sql.Rows) (ResultRecord, error) {
	var (
		r           ResultRecord
		year        int
		eligible    sql.NullBool
		entitlement sql.NullString
		failureKind sql.NullString
		errText     sql.NullString
		resultJSON  sql.NullString
		createdAt   string
	)

	err := rows.Scan(
		&r.RunID, &r.StudentID, &year, &eligible, &entitlement,
		&failureKind, &errText, &resultJSON, &createdAt,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan result: %w", err)
	}

	r.Year = statute.Year(year)
	r.Eligible = eligible.Bool
	r.Entitlement = entitlement.String
	r.FailureKind = failureKind.String
	r.Error = errText.String
	r.ResultJSON = resultJSON.String
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"results", "runs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
