package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/sales-simulator/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decs(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = dec(v)
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s, got %s %v", want, got, msgAndArgs)
	}
}

func unit(id int, value string, phase int) engine.Unit {
	return engine.Unit{
		ID:          id,
		Description: "Apto test",
		Value:       dec(value),
		Category:    "apartment",
		Status:      "available",
		Phase:       phase,
	}
}

// baseConfig is the end-to-end scenario configuration: 30% entrada over
// 6 months, 70% at delivery, 10% pre-launch discount for 2 phases.
func baseConfig() engine.Config {
	return engine.Config{
		INCC:            dec("0.0045"),
		IPCA:            dec("0.004"),
		EntradaPct:      dec("30"),
		EntradaMonths:   6,
		PayAtoPct:       decimal.Zero,
		PayInterPct:     decimal.Zero,
		PayInterMonth:   0,
		PayChavesPct:    dec("70"),
		PreLaunchMonths: 2,
		LaunchMonths:    0,
		DiscountPre:     dec("10"),
		DiscountLaunch:  decimal.Zero,
	}
}
