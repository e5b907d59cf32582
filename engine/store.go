/*
store.go - Persistence interface for simulation runs

PURPOSE:
  A Run is the recorded outcome of one simulation: the summary metrics and
  the aggregate vector, plus the raw request that produced it so the run
  can be replayed. Units and configurations are not stored as master data;
  they only travel inside a run's input.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - engine/store/memory.go: In-memory for testing

EXAMPLE:
  run := engine.NewRun(uuid.NewString(), "launch plan", len(units), result, input, time.Now())
  if err := runs.SaveRun(ctx, run); err != nil {
      return err
  }
*/
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Run is a recorded simulation outcome.
type Run struct {
	ID        string
	Name      string
	CreatedAt time.Time

	UnitCount      int
	TotalRevenue   decimal.Decimal
	MonthlyRate    decimal.Decimal
	AnnualRate     decimal.Decimal
	Converged      bool
	Payback        int
	PaybackReached bool
	ROI            decimal.Decimal
	Aggregate      CashFlow

	// InputJSON is the request body the run was computed from.
	InputJSON string
}

// NewRun records a simulation result.
func NewRun(id, name string, unitCount int, res *Result, inputJSON string, at time.Time) Run {
	s := res.Summary
	return Run{
		ID:             id,
		Name:           name,
		CreatedAt:      at.UTC(),
		UnitCount:      unitCount,
		TotalRevenue:   s.TotalRevenue,
		MonthlyRate:    s.Rate.Rate,
		AnnualRate:     s.AnnualRate,
		Converged:      s.Rate.Converged,
		Payback:        s.Payback,
		PaybackReached: s.PaybackReached,
		ROI:            s.ROI,
		Aggregate:      res.Aggregate,
		InputJSON:      inputJSON,
	}
}

// RunStore persists simulation runs.
type RunStore interface {
	// SaveRun inserts or replaces a run by ID.
	SaveRun(ctx context.Context, run Run) error

	// GetRun returns ErrRunNotFound when the ID is unknown.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the newest runs first. limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// DeleteRun returns ErrRunNotFound when the ID is unknown.
	DeleteRun(ctx context.Context, id string) error
}
