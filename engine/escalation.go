package engine

import "github.com/shopspring/decimal"

// IndexName identifies a price-escalation index.
type IndexName string

const (
	IndexINCC IndexName = "incc" // construction costs, intermediate leg
	IndexIPCA IndexName = "ipca" // consumer prices, delivery leg
)

// Index is a periodic compounding rate.
type Index struct {
	Name IndexName
	Rate decimal.Decimal
}

// Escalate compounds value by the index rate for month periods.
func (ix Index) Escalate(value decimal.Decimal, month int) decimal.Decimal {
	return Escalate(value, month, ix.Rate)
}

// Escalate returns initial * (1+rate)^month.
// The exponent is an integer, so the power is exact. Month 0 is the
// identity for every rate, including -1.
func Escalate(initial decimal.Decimal, month int, rate decimal.Decimal) decimal.Decimal {
	if month == 0 {
		return initial
	}
	factor := one.Add(rate).Pow(decimal.NewFromInt(int64(month)))
	return initial.Mul(factor)
}
