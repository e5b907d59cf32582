/*
errors.go - Error types for the projection engine

PURPOSE:
  All engine errors in one place. The engine only fails on degenerate
  input that would otherwise write outside the 24-month horizon or divide
  by a zero-length installment window. Solver non-convergence is NOT an
  error: it is reported through RateResult.Converged.

ERROR CATEGORIES:
  1. Degenerate input - installment window, out-of-range month
  2. Lookup errors - missing runs in a RunStore

USAGE:
  _, err := engine.Simulate(units, cfg)

  var rangeErr *engine.MonthRangeError
  if errors.As(err, &rangeErr) {
      log.Printf("%s month %d out of range", rangeErr.Field, rangeErr.Month)
  }

  if engine.IsClientError(err) {
      // 400, the caller sent a configuration the engine cannot project
  }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInstallmentWindow is returned when the down payment has to be
	// spread over zero or a negative number of months.
	ErrInvalidInstallmentWindow = errors.New("invalid installment window")

	// ErrMonthOutOfRange is returned when a payment would land outside 0..23.
	ErrMonthOutOfRange = errors.New("month out of projection range")

	// ErrRunNotFound is returned when a stored simulation run doesn't exist.
	ErrRunNotFound = errors.New("simulation run not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InstallmentWindowError reports a down payment with no months to spread over.
type InstallmentWindowError struct {
	Months int
	Total  string // entrada total that could not be spread
}

func (e *InstallmentWindowError) Error() string {
	return fmt.Sprintf("invalid installment window: %d months for entrada total %s", e.Months, e.Total)
}

func (e *InstallmentWindowError) Unwrap() error {
	return ErrInvalidInstallmentWindow
}

// MonthRangeError reports a configured month that falls outside the horizon.
type MonthRangeError struct {
	Field string // config field, e.g. "payInterMonth"
	Month int
	Min   int
	Max   int
}

func (e *MonthRangeError) Error() string {
	return fmt.Sprintf("%s: month %d outside [%d, %d]", e.Field, e.Month, e.Min, e.Max)
}

func (e *MonthRangeError) Unwrap() error {
	return ErrMonthOutOfRange
}

// UnitError ties a cash-flow failure to the unit being projected.
type UnitError struct {
	UnitID int
	Err    error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %d: %v", e.UnitID, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to the supplied configuration.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInstallmentWindow) ||
		errors.Is(err, ErrMonthOutOfRange)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound)
}
