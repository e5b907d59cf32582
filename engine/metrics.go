package engine

import "github.com/shopspring/decimal"

// Payback returns the first month at which the running total of flows is
// non-negative. It returns len(flows) when that never happens within the
// horizon.
func Payback(flows []decimal.Decimal) int {
	running := decimal.Zero
	for i, v := range flows {
		running = running.Add(v)
		if !running.IsNegative() {
			return i
		}
	}
	return len(flows)
}

// ROI returns total / invested * 100, rounded to 2 decimal places.
// Invested is the magnitude of the most negative single month. Flows that
// never go negative have nothing invested and yield 0.
func ROI(flows []decimal.Decimal) decimal.Decimal {
	if len(flows) == 0 {
		return decimal.Zero
	}

	lowest := flows[0]
	for _, v := range flows[1:] {
		if v.LessThan(lowest) {
			lowest = v
		}
	}

	invested := lowest.Neg()
	if !invested.IsPositive() {
		return decimal.Zero
	}
	return Sum(flows).Div(invested).Mul(hundred).Round(2)
}
