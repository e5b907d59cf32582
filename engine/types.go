/*
Package engine provides the sales-simulation projection engine.

PURPOSE:
  Turns an ordered list of property units and a commercial configuration
  into a 24-month cash-flow projection per unit and for the whole
  portfolio, then derives the summary metrics a sales team looks at:
  total revenue, monthly rate of return, payback month and ROI.

KEY CONCEPTS IN THIS FILE (types.go):
  - Unit: a property for sale (base value + explicit discount phase)
  - Config: the commercial parameters (payment legs, indices, phase discounts)
  - CashFlow: a fixed 24-month vector of signed amounts

DESIGN PRINCIPLES:
  1. Purity: every function takes its inputs explicitly, no global state
  2. Precision: decimal.Decimal for money, rates and percentages
  3. Fixed horizon: CashFlow is an array type, so the length is always 24
  4. Fail fast: degenerate windows and months return typed errors

USAGE:
  result, err := engine.Simulate(units, cfg)
  if err != nil {
      return err
  }
  fmt.Println(result.Summary.TotalRevenue, result.Summary.ROI)

SEE ALSO:
  - cashflow.go: Per-unit vector construction
  - solver.go: Rate-of-return search
  - simulation.go: End-to-end orchestration
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// HORIZON
// =============================================================================

const (
	// Months is the fixed projection horizon.
	Months = 24

	// SigningMonth is when the "ato" payment is due.
	SigningMonth = 0

	// DeliveryMonth is when the keys ("chaves") payment is due.
	DeliveryMonth = Months - 1
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Pct converts a plain [0,100] percentage into a fraction.
func Pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// =============================================================================
// UNIT
// =============================================================================

// Category labels the kind of unit. The engine treats it as opaque;
// realestate defines the known values.
type Category string

// Status labels a unit's availability. Opaque to the engine.
type Status string

// Unit is a property offered for sale. Immutable once loaded.
//
// Phase is the discount-phase index the unit is sold in. It is an explicit
// attribute so that list order carries no business meaning.
type Unit struct {
	ID          int
	Description string
	Value       decimal.Decimal
	Category    Category
	Status      Status
	Phase       int
}

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the commercial parameters of a simulation.
// Percentages are plain numbers in [0,100]; INCC and IPCA are monthly
// fractions (0.0045 = 0.45%/month). Nothing here is validated against
// business rules: legs are not required to add up to 100.
type Config struct {
	// Escalation indices
	INCC decimal.Decimal // applied to the intermediate leg
	IPCA decimal.Decimal // applied to the delivery leg

	// Down payment, spread over months 1..EntradaMonths
	EntradaPct    decimal.Decimal
	EntradaMonths int

	// Paid at signing (month 0)
	PayAtoPct decimal.Decimal

	// Single intermediate payment
	PayInterPct   decimal.Decimal
	PayInterMonth int

	// Paid at delivery (month 23)
	PayChavesPct decimal.Decimal

	// Phase bands
	PreLaunchMonths int
	LaunchMonths    int
	DiscountPre     decimal.Decimal
	DiscountLaunch  decimal.Decimal
}

// Discount returns the discount policy described by the config.
func (c Config) Discount() DiscountPolicy {
	return DiscountPolicy{
		PreLaunchMonths: c.PreLaunchMonths,
		LaunchMonths:    c.LaunchMonths,
		DiscountPre:     c.DiscountPre,
		DiscountLaunch:  c.DiscountLaunch,
	}
}

// InterIndex is the escalation applied to the intermediate leg.
func (c Config) InterIndex() Index { return Index{Name: IndexINCC, Rate: c.INCC} }

// DeliveryIndex is the escalation applied to the delivery leg.
func (c Config) DeliveryIndex() Index { return Index{Name: IndexIPCA, Rate: c.IPCA} }

// =============================================================================
// CASH FLOW - Fixed 24-month vector
// =============================================================================

// CashFlow is a monthly vector indexed by month 0..23.
// The zero value is 24 zeros.
type CashFlow [Months]decimal.Decimal

// Slice returns the months as a slice, for the metric functions.
func (cf CashFlow) Slice() []decimal.Decimal {
	out := make([]decimal.Decimal, Months)
	copy(out, cf[:])
	return out
}

// Total is the sum of every month.
func (cf CashFlow) Total() decimal.Decimal {
	return Sum(cf[:])
}

// Cumulative returns the running balance month by month.
func (cf CashFlow) Cumulative() CashFlow {
	var out CashFlow
	running := decimal.Zero
	for i, v := range cf {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// Floats converts the vector for presentation layers (charts, JSON).
func (cf CashFlow) Floats() []float64 {
	out := make([]float64, Months)
	for i, v := range cf {
		out[i] = v.InexactFloat64()
	}
	return out
}

// Sum adds every value in flows.
func Sum(flows []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range flows {
		total = total.Add(v)
	}
	return total
}
