/*
solver.go - Rate-of-return search

PURPOSE:
  Finds the monthly rate at which the net present value of a cash-flow
  vector is (close to) zero.

ALGORITHM:
  A coarse fixed-step walk, not Newton or secant:
  1. Start at 1%/month
  2. Compute NPV = sum(cf[i] / (1+rate)^i)
  3. |NPV| < 1e-6 -> converged, stop
  4. Step +0.01 when NPV > 0, -0.01 otherwise
  5. Clamp the rate to -0.99 so (1+rate) never reaches zero
  6. Give up after 200 iterations and return the last rate

  The search is deterministic. It can stall or oscillate between two
  rates one step apart, and it finds at most one root when the flows
  change sign more than once. RateResult.Converged tells a trustworthy
  root from a stalled search.
*/
package engine

import "github.com/shopspring/decimal"

// Solver parameters.
var (
	SolverInitialRate = decimal.NewFromFloat(0.01)
	SolverStep        = decimal.NewFromFloat(0.01)
	SolverTolerance   = decimal.NewFromFloat(1e-6)
	SolverFloor       = decimal.NewFromFloat(-0.99)
)

const SolverMaxIterations = 200

// RateResult is the outcome of a rate search.
type RateResult struct {
	Rate       decimal.Decimal // monthly, as a fraction
	Converged  bool
	Iterations int
	NPV        decimal.Decimal // NPV evaluated at Rate
}

// NPV discounts flows at a monthly rate. flows[0] is undiscounted.
func NPV(flows []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	base := one.Add(rate)
	factor := one
	npv := decimal.Zero
	for i, cf := range flows {
		if i > 0 {
			factor = factor.Mul(base)
		}
		if cf.IsZero() {
			continue
		}
		npv = npv.Add(cf.Div(factor))
	}
	return npv
}

// SolveRate searches for the monthly rate of return of flows.
func SolveRate(flows []decimal.Decimal) RateResult {
	rate := SolverInitialRate

	for i := 0; i < SolverMaxIterations; i++ {
		npv := NPV(flows, rate)
		if npv.Abs().LessThan(SolverTolerance) {
			return RateResult{Rate: rate, Converged: true, Iterations: i + 1, NPV: npv}
		}

		if npv.IsPositive() {
			rate = rate.Add(SolverStep)
		} else {
			rate = rate.Sub(SolverStep)
		}
		if rate.LessThan(SolverFloor) {
			rate = SolverFloor
		}
	}

	return RateResult{Rate: rate, Converged: false, Iterations: SolverMaxIterations, NPV: NPV(flows, rate)}
}

// AnnualRate converts a monthly rate into its compounded yearly equivalent.
func AnnualRate(monthly decimal.Decimal) decimal.Decimal {
	return one.Add(monthly).Pow(decimal.NewFromInt(12)).Sub(one)
}
