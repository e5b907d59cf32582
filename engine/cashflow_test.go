package engine_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-simulator/engine"
)

// =============================================================================
// END-TO-END SCENARIO
// =============================================================================

func TestBuildCashFlow_PreLaunchUnit(t *testing.T) {
	// GIVEN: A 300000 unit sold at phase 0 with a 10% pre-launch discount,
	//        30% entrada over 6 months and 70% at delivery
	// WHEN: Building its cash flow
	// THEN: Base price is 270000, entrada is 13500/month over months 1-6,
	//       delivery is 189000 escalated by IPCA over 23 months

	cfg := baseConfig()
	cf, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	require.NoError(t, err)

	assert.Len(t, cf.Slice(), engine.Months)
	assertDecimal(t, "0", cf[0], "month 0")
	for m := 1; m <= 6; m++ {
		assertDecimal(t, "13500", cf[m], "entrada month", m)
	}
	for m := 7; m < engine.DeliveryMonth; m++ {
		assertDecimal(t, "0", cf[m], "month", m)
	}

	wantChaves := 270000 * 0.70 * math.Pow(1.004, 23)
	assert.InDelta(t, wantChaves, cf[engine.DeliveryMonth].InexactFloat64(), 1e-6)
}

func TestSplitLegs(t *testing.T) {
	cfg := baseConfig()
	cfg.PayAtoPct = dec("5")
	cfg.PayInterPct = dec("10")
	cfg.EntradaPct = dec("15")

	legs := engine.SplitLegs(unit(1, "300000", 0), 0, cfg)

	assertDecimal(t, "270000", legs.BasePrice)
	assertDecimal(t, "40500", legs.Entrada)
	assertDecimal(t, "13500", legs.Ato)
	assertDecimal(t, "27000", legs.Inter)
	assertDecimal(t, "189000", legs.Chaves)
}

// =============================================================================
// LEG PLACEMENT
// =============================================================================

func TestBuildCashFlow_AtoAtSigning(t *testing.T) {
	cfg := baseConfig()
	cfg.PayAtoPct = dec("10")

	cf, err := engine.BuildCashFlow(unit(1, "100000", 10), 10, cfg) // post-launch, no discount
	require.NoError(t, err)

	assertDecimal(t, "10000", cf[engine.SigningMonth])
}

func TestBuildCashFlow_IntermediateUsesINCC(t *testing.T) {
	// GIVEN: INCC 1%, IPCA 0, 10% intermediate payment at month 12
	// THEN: Month 12 holds 10000 * 1.01^12 from INCC only
	cfg := baseConfig()
	cfg.INCC = dec("0.01")
	cfg.IPCA = decimal.Zero
	cfg.EntradaPct = decimal.Zero
	cfg.EntradaMonths = 0
	cfg.PayInterPct = dec("10")
	cfg.PayInterMonth = 12
	cfg.PayChavesPct = dec("90")

	cf, err := engine.BuildCashFlow(unit(1, "100000", 10), 10, cfg)
	require.NoError(t, err)

	want := 10000 * math.Pow(1.01, 12)
	assert.InDelta(t, want, cf[12].InexactFloat64(), 1e-9)
	assertDecimal(t, "90000", cf[engine.DeliveryMonth], "IPCA 0 leaves delivery unescalated")
}

func TestBuildCashFlow_IntermediateAtSigning_NotEscalated(t *testing.T) {
	// GIVEN: 10% intermediate at month 0 with INCC -100%
	// THEN: Month 0 holds the full 30000; zero periods never escalate
	cfg := baseConfig()
	cfg.INCC = dec("-1")
	cfg.IPCA = decimal.Zero
	cfg.PayInterPct = dec("10")
	cfg.PayInterMonth = 0
	cfg.PayChavesPct = dec("60")

	cf, err := engine.BuildCashFlow(unit(1, "300000", 10), 10, cfg)
	require.NoError(t, err)

	assertDecimal(t, "30000", cf[engine.SigningMonth])
	assertDecimal(t, "180000", cf[engine.DeliveryMonth])
}

func TestBuildCashFlow_LegsOnSameMonthAccumulate(t *testing.T) {
	// GIVEN: Intermediate payment at month 3, inside the entrada window
	// THEN: Month 3 holds installment + intermediate
	cfg := baseConfig()
	cfg.INCC = decimal.Zero
	cfg.PayInterPct = dec("10")
	cfg.PayInterMonth = 3

	cf, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	require.NoError(t, err)

	// 13500 installment + 27000 intermediate
	assertDecimal(t, "40500", cf[3])
	assertDecimal(t, "13500", cf[2])
}

func TestBuildCashFlow_IntermediateAtDeliveryAccumulates(t *testing.T) {
	cfg := baseConfig()
	cfg.INCC = decimal.Zero
	cfg.IPCA = decimal.Zero
	cfg.PayInterPct = dec("10")
	cfg.PayInterMonth = engine.DeliveryMonth

	cf, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	require.NoError(t, err)

	// 27000 intermediate + 189000 delivery
	assertDecimal(t, "216000", cf[engine.DeliveryMonth])
}

func TestBuildCashFlow_ZeroChaves_ContributesZero(t *testing.T) {
	cfg := baseConfig()
	cfg.EntradaPct = dec("100")
	cfg.PayChavesPct = decimal.Zero

	cf, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	require.NoError(t, err)

	assertDecimal(t, "0", cf[engine.DeliveryMonth])
	assertDecimal(t, "270000", cf.Total())
}

func TestBuildCashFlow_LegsNotRequiredToSumTo100(t *testing.T) {
	// 30 + 30 + 70 = 130%: applied as configured, not rejected
	cfg := baseConfig()
	cfg.IPCA = decimal.Zero
	cfg.PayAtoPct = dec("30")

	cf, err := engine.BuildCashFlow(unit(1, "100000", 5), 5, cfg)
	require.NoError(t, err)

	assertDecimal(t, "130000", cf.Total())
}

func TestBuildCashFlow_IntermediateMonthIgnoredWhenPctZero(t *testing.T) {
	// Out-of-range month is harmless when there is no intermediate payment
	cfg := baseConfig()
	cfg.PayInterPct = decimal.Zero
	cfg.PayInterMonth = 99

	_, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	assert.NoError(t, err)
}

func TestBuildCashFlow_FullWindow(t *testing.T) {
	// Entrada spread across every month 1..23
	cfg := baseConfig()
	cfg.EntradaPct = dec("23")
	cfg.EntradaMonths = engine.DeliveryMonth
	cfg.PayChavesPct = decimal.Zero

	cf, err := engine.BuildCashFlow(unit(1, "100000", 9), 9, cfg)
	require.NoError(t, err)

	for m := 1; m <= engine.DeliveryMonth; m++ {
		assertDecimal(t, "1000", cf[m], "month", m)
	}
}

// =============================================================================
// DEGENERATE INPUT
// =============================================================================

func TestBuildCashFlow_ZeroWindowWithEntrada_Fails(t *testing.T) {
	cfg := baseConfig()
	cfg.EntradaMonths = 0

	_, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInstallmentWindow)
	var winErr *engine.InstallmentWindowError
	require.ErrorAs(t, err, &winErr)
	assert.Equal(t, 0, winErr.Months)
	assert.True(t, engine.IsClientError(err))
}

func TestBuildCashFlow_ZeroWindowWithoutEntrada_Allowed(t *testing.T) {
	cfg := baseConfig()
	cfg.EntradaPct = decimal.Zero
	cfg.EntradaMonths = 0

	cf, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	require.NoError(t, err)

	for m := 1; m < engine.DeliveryMonth; m++ {
		assertDecimal(t, "0", cf[m], "month", m)
	}
}

func TestBuildCashFlow_NegativeWindow_Fails(t *testing.T) {
	cfg := baseConfig()
	cfg.EntradaPct = decimal.Zero
	cfg.EntradaMonths = -1

	_, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)
	assert.ErrorIs(t, err, engine.ErrInvalidInstallmentWindow)
}

func TestBuildCashFlow_WindowPastHorizon_Fails(t *testing.T) {
	cfg := baseConfig()
	cfg.EntradaMonths = engine.Months

	_, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)

	var rangeErr *engine.MonthRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "entradaMonths", rangeErr.Field)
	assert.Equal(t, engine.Months, rangeErr.Month)
	assert.ErrorIs(t, err, engine.ErrMonthOutOfRange)
}

func TestBuildCashFlow_IntermediateMonthOutOfRange_Fails(t *testing.T) {
	for _, month := range []int{-1, engine.Months, 100} {
		cfg := baseConfig()
		cfg.PayInterPct = dec("10")
		cfg.PayInterMonth = month

		_, err := engine.BuildCashFlow(unit(1, "300000", 0), 0, cfg)

		var rangeErr *engine.MonthRangeError
		require.ErrorAs(t, err, &rangeErr, "month %d", month)
		assert.Equal(t, "payInterMonth", rangeErr.Field)
		assert.Equal(t, month, rangeErr.Month)
	}
}

// =============================================================================
// CASH FLOW HELPERS
// =============================================================================

func TestCashFlow_Cumulative(t *testing.T) {
	var cf engine.CashFlow
	cf[0] = dec("-100")
	cf[1] = dec("40")
	cf[2] = dec("70")

	cum := cf.Cumulative()

	assertDecimal(t, "-100", cum[0])
	assertDecimal(t, "-60", cum[1])
	assertDecimal(t, "10", cum[2])
	assertDecimal(t, "10", cum[engine.DeliveryMonth])
}

func TestCashFlow_Floats(t *testing.T) {
	var cf engine.CashFlow
	cf[5] = dec("13500.5")

	floats := cf.Floats()

	assert.Len(t, floats, engine.Months)
	assert.Equal(t, 13500.5, floats[5])
	assert.Equal(t, 0.0, floats[0])
}
