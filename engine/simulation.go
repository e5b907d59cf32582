/*
simulation.go - End-to-end sales simulation

PURPOSE:
  Runs the whole projection for a portfolio:

    units + config
      -> BuildCashFlow per unit (discount + escalation)
      -> Aggregate
      -> SolveRate, Payback, ROI

  Each call builds fresh vectors, so Simulate is safe to call
  concurrently with different configurations.

FAILURE:
  The first unit whose cash flow cannot be built stops the run. The
  error is a *UnitError wrapping the builder's typed error, so callers
  can still use errors.Is(err, ErrMonthOutOfRange) and friends.

EXAMPLE:
  result, err := engine.Simulate(units, cfg)
  if err != nil {
      return err
  }
  chart(result.Aggregate.Floats())
  fmt.Printf("IRR %s/month (converged=%v)\n",
      result.Summary.Rate.Rate, result.Summary.Rate.Converged)
*/
package engine

import "github.com/shopspring/decimal"

// UnitFlow is the projection of one unit.
type UnitFlow struct {
	Unit      Unit
	Phase     int
	Band      Phase
	BasePrice decimal.Decimal // after discount
	Flow      CashFlow
	Total     decimal.Decimal
}

// Summary holds the portfolio metrics derived from the aggregate vector.
type Summary struct {
	TotalRevenue decimal.Decimal
	Rate         RateResult
	AnnualRate   decimal.Decimal

	// Payback is a month index, or Months when it is never reached.
	Payback        int
	PaybackReached bool

	ROI decimal.Decimal // percent, 2dp
}

// Result is the output of a simulation run. Nothing here is persisted.
type Result struct {
	Units     []UnitFlow
	Aggregate CashFlow
	Summary   Summary
}

// Simulate projects every unit and summarizes the portfolio.
func Simulate(units []Unit, cfg Config) (*Result, error) {
	policy := cfg.Discount()
	flows := make([]CashFlow, 0, len(units))
	unitFlows := make([]UnitFlow, 0, len(units))

	for _, u := range units {
		cf, err := BuildCashFlow(u, u.Phase, cfg)
		if err != nil {
			return nil, &UnitError{UnitID: u.ID, Err: err}
		}
		flows = append(flows, cf)
		unitFlows = append(unitFlows, UnitFlow{
			Unit:      u,
			Phase:     u.Phase,
			Band:      policy.PhaseFor(u.Phase),
			BasePrice: policy.Apply(u.Value, u.Phase),
			Flow:      cf,
			Total:     cf.Total(),
		})
	}

	aggregate := Aggregate(flows...)

	return &Result{
		Units:     unitFlows,
		Aggregate: aggregate,
		Summary:   Summarize(aggregate),
	}, nil
}

// Summarize derives the portfolio metrics from an aggregate vector.
func Summarize(aggregate CashFlow) Summary {
	flows := aggregate.Slice()
	rate := SolveRate(flows)
	payback := Payback(flows)

	return Summary{
		TotalRevenue:   aggregate.Total(),
		Rate:           rate,
		AnnualRate:     AnnualRate(rate.Rate),
		Payback:        payback,
		PaybackReached: payback < len(flows),
		ROI:            ROI(flows),
	}
}
