package engine_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-simulator/engine"
)

func TestSimulate_SingleUnit(t *testing.T) {
	// GIVEN: The pre-launch unit scenario
	// WHEN: Simulating the one-unit portfolio
	// THEN: The aggregate equals the unit flow and revenue is entrada + escalated chaves

	cfg := baseConfig()
	result, err := engine.Simulate([]engine.Unit{unit(1, "300000", 0)}, cfg)
	require.NoError(t, err)

	require.Len(t, result.Units, 1)
	uf := result.Units[0]
	assert.Equal(t, engine.PhasePreLaunch, uf.Band)
	assertDecimal(t, "270000", uf.BasePrice)
	assertFlowsEqual(t, uf.Flow, result.Aggregate)

	chaves := engine.Escalate(dec("189000"), engine.DeliveryMonth, cfg.IPCA)
	assertDecimal(t, dec("81000").Add(chaves).String(), result.Summary.TotalRevenue)
	assert.True(t, uf.Total.Equal(result.Summary.TotalRevenue))
}

func TestSimulate_InflowOnlyPortfolio(t *testing.T) {
	// A sales portfolio only receives money: payback is immediate, nothing is
	// invested (ROI 0) and the rate search cannot find a root.
	result, err := engine.Simulate([]engine.Unit{unit(1, "300000", 0), unit(2, "250000", 3)}, baseConfig())
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 0, s.Payback)
	assert.True(t, s.PaybackReached)
	assertDecimal(t, "0", s.ROI)
	assert.False(t, s.Rate.Converged)
}

func TestSimulate_UsesExplicitPhaseNotListPosition(t *testing.T) {
	// GIVEN: A post-launch unit listed first and a pre-launch unit listed second
	// THEN: Each unit is priced by its own Phase attribute
	units := []engine.Unit{unit(10, "100000", 7), unit(11, "100000", 0)}

	result, err := engine.Simulate(units, baseConfig())
	require.NoError(t, err)

	assert.Equal(t, engine.PhasePostLaunch, result.Units[0].Band)
	assertDecimal(t, "100000", result.Units[0].BasePrice)
	assert.Equal(t, engine.PhasePreLaunch, result.Units[1].Band)
	assertDecimal(t, "90000", result.Units[1].BasePrice)
}

func TestSimulate_AggregateIsOrderIndependent(t *testing.T) {
	a, b, c := unit(1, "300000", 0), unit(2, "420000", 1), unit(3, "275000", 4)

	first, err := engine.Simulate([]engine.Unit{a, b, c}, baseConfig())
	require.NoError(t, err)
	second, err := engine.Simulate([]engine.Unit{c, a, b}, baseConfig())
	require.NoError(t, err)

	assertFlowsEqual(t, first.Aggregate, second.Aggregate)
	assert.True(t, first.Summary.TotalRevenue.Equal(second.Summary.TotalRevenue))
}

func TestSimulate_EmptyPortfolio(t *testing.T) {
	result, err := engine.Simulate(nil, baseConfig())
	require.NoError(t, err)

	assert.Empty(t, result.Units)
	assertDecimal(t, "0", result.Summary.TotalRevenue)
	assertDecimal(t, "0", result.Summary.ROI)
	assert.True(t, result.Summary.Rate.Converged)
}

func TestSimulate_DegenerateConfig_FailsWithUnitContext(t *testing.T) {
	cfg := baseConfig()
	cfg.PayInterPct = dec("5")
	cfg.PayInterMonth = 30

	result, err := engine.Simulate([]engine.Unit{unit(42, "300000", 0)}, cfg)

	assert.Nil(t, result)
	var unitErr *engine.UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, 42, unitErr.UnitID)
	assert.ErrorIs(t, err, engine.ErrMonthOutOfRange)
	assert.True(t, engine.IsClientError(err))
	assert.False(t, engine.IsNotFound(err))
}

func TestSimulate_ConcurrentRunsWithDifferentConfigs(t *testing.T) {
	// GIVEN: Several configurations simulated sequentially
	// WHEN: The same configurations run in parallel
	// THEN: Results match, nothing is shared between calls

	units := []engine.Unit{unit(1, "300000", 0), unit(2, "350000", 2), unit(3, "500000", 6)}
	configs := make([]engine.Config, 8)
	for i := range configs {
		cfg := baseConfig()
		cfg.IPCA = decimal.NewFromFloat(0.001 * float64(i))
		cfg.EntradaMonths = i + 1
		configs[i] = cfg
	}

	want := make([]decimal.Decimal, len(configs))
	for i, cfg := range configs {
		res, err := engine.Simulate(units, cfg)
		require.NoError(t, err)
		want[i] = res.Summary.TotalRevenue
	}

	got := make([]decimal.Decimal, len(configs))
	var wg sync.WaitGroup
	for i, cfg := range configs {
		wg.Add(1)
		go func(i int, cfg engine.Config) {
			defer wg.Done()
			res, err := engine.Simulate(units, cfg)
			if err == nil {
				got[i] = res.Summary.TotalRevenue
			}
		}(i, cfg)
	}
	wg.Wait()

	for i := range configs {
		assert.True(t, want[i].Equal(got[i]), "config %d: want %s got %s", i, want[i], got[i])
	}
}

func TestSummarize_InvestmentCurve(t *testing.T) {
	// GIVEN: A cash curve that goes negative then recovers
	var cf engine.CashFlow
	cf[0] = dec("-1000")
	cf[engine.DeliveryMonth] = dec("1500")

	s := engine.Summarize(cf)

	assertDecimal(t, "500", s.TotalRevenue)
	assert.Equal(t, engine.DeliveryMonth, s.Payback)
	assertDecimal(t, "50", s.ROI)
	assert.True(t, s.Rate.Converged || s.Rate.Iterations == engine.SolverMaxIterations)
	assert.True(t, s.Rate.Rate.IsPositive())
}

func TestSummarize_PaybackBeyondHorizon(t *testing.T) {
	var cf engine.CashFlow
	cf[0] = dec("-1000")
	cf[5] = dec("100")

	s := engine.Summarize(cf)

	assert.Equal(t, engine.Months, s.Payback)
	assert.False(t, s.PaybackReached)
}
