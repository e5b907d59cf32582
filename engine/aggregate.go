package engine

// Aggregate sums cash-flow vectors month by month.
// With no input it returns 24 zeros.
func Aggregate(flows ...CashFlow) CashFlow {
	var total CashFlow
	for _, cf := range flows {
		total = total.Add(cf)
	}
	return total
}

// Add returns the element-wise sum of two vectors.
func (cf CashFlow) Add(other CashFlow) CashFlow {
	var out CashFlow
	for i := range cf {
		out[i] = cf[i].Add(other[i])
	}
	return out
}
