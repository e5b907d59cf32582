/*
Package sqlite provides a SQLite-backed implementation of engine.RunStore.

PURPOSE:
  Keeps the history of simulation runs: summary metrics, the aggregate
  24-month vector and the request body that produced each run. Units and
  configurations are not master data here; they only live inside a run's
  input_json.

KEY TABLES:
  simulation_runs: One row per saved run

STORAGE FORMAT:
  - Money, rates and ROI are decimal strings (TEXT), never REAL
  - aggregate_json is a JSON array of 24 decimal strings
  - created_at is Unix nanoseconds so ordering survives sub-second saves

INDEXES:
  - idx_simulation_runs_created: ListRuns (newest first)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, opened in WAL mode so readers do
  not block each other.

USAGE:
  store, err := sqlite.New("./data/simulator.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  handler := api.NewHandler(store, cache.NewMemory())

SEE ALSO:
  - engine/store.go: RunStore interface
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/sales-simulator/engine"
)

// Store implements engine.RunStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ engine.RunStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		unit_count INTEGER NOT NULL,
		total_revenue TEXT NOT NULL,
		monthly_rate TEXT NOT NULL,
		annual_rate TEXT NOT NULL,
		converged BOOLEAN NOT NULL DEFAULT FALSE,
		payback INTEGER NOT NULL,
		payback_reached BOOLEAN NOT NULL DEFAULT FALSE,
		roi TEXT NOT NULL,
		aggregate_json TEXT NOT NULL,
		input_json TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_simulation_runs_created
		ON simulation_runs(created_at DESC, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN STORE (engine.RunStore interface)
// =============================================================================

// SaveRun inserts a run, replacing any run with the same ID.
func (s *Store) SaveRun(ctx context.Context, run engine.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	aggregateJSON, err := json.Marshal(run.Aggregate)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate: %w", err)
	}

	query := `
		INSERT INTO simulation_runs
		(id, name, created_at, unit_count, total_revenue, monthly_rate, annual_rate,
		 converged, payback, payback_reached, roi, aggregate_json, input_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at,
			unit_count = excluded.unit_count,
			total_revenue = excluded.total_revenue,
			monthly_rate = excluded.monthly_rate,
			annual_rate = excluded.annual_rate,
			converged = excluded.converged,
			payback = excluded.payback,
			payback_reached = excluded.payback_reached,
			roi = excluded.roi,
			aggregate_json = excluded.aggregate_json,
			input_json = excluded.input_json
	`

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		run.Name,
		run.CreatedAt.UnixNano(),
		run.UnitCount,
		run.TotalRevenue.String(),
		run.MonthlyRate.String(),
		run.AnnualRate.String(),
		run.Converged,
		run.Payback,
		run.PaybackReached,
		run.ROI.String(),
		string(aggregateJSON),
		run.InputJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

const runColumns = `id, name, created_at, unit_count, total_revenue, monthly_rate, annual_rate,
	converged, payback, payback_reached, roi, aggregate_json, input_json`

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*engine.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM simulation_runs WHERE id = ?", id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns runs newest first. limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]engine.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM simulation_runs ORDER BY created_at DESC, id ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []engine.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM simulation_runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrRunNotFound
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM simulation_runs")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (engine.Run, error) {
	var run engine.Run
	var createdAt int64
	var totalRevenue, monthlyRate, annualRate, roi, aggregateJSON string

	err := row.Scan(
		&run.ID,
		&run.Name,
		&createdAt,
		&run.UnitCount,
		&totalRevenue,
		&monthlyRate,
		&annualRate,
		&run.Converged,
		&run.Payback,
		&run.PaybackReached,
		&roi,
		&aggregateJSON,
		&run.InputJSON,
	)
	if err != nil {
		return engine.Run{}, err
	}

	run.CreatedAt = time.Unix(0, createdAt).UTC()

	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&run.TotalRevenue, totalRevenue},
		{&run.MonthlyRate, monthlyRate},
		{&run.AnnualRate, annualRate},
		{&run.ROI, roi},
	} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return engine.Run{}, fmt.Errorf("run %s: bad decimal %q: %w", run.ID, f.src, err)
		}
	}

	if err := json.Unmarshal([]byte(aggregateJSON), &run.Aggregate); err != nil {
		return engine.Run{}, fmt.Errorf("run %s: bad aggregate: %w", run.ID, err)
	}

	return run, nil
}
