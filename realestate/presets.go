/*
presets.go - Pre-built sales configurations and the sample unit list

PURPOSE:
  Ready-to-use commercial configurations for common launch strategies,
  plus the default tower the simulator shows before any units are loaded.

AVAILABLE CONFIGS:
  StandardConfig:    30% entrada over 6 months, 10% intermediate at month 12,
                     60% at delivery, pre-launch and launch discounts
  PreLaunchConfig:   Aggressive pre-launch: deeper discount, longer window
  LongEntradaConfig: Entrada spread over 18 months, smaller delivery payment

INDICES:
  Defaults use INCC 0.45%/month (construction costs) on the intermediate
  leg and IPCA 0.40%/month (consumer prices) on the delivery leg.

EXAMPLE:
  cfg := realestate.StandardConfig()
  cfg.DiscountPre = decimal.NewFromInt(15)

  result, err := engine.Simulate(realestate.DefaultUnits(), cfg)

SEE ALSO:
  - factory/config.go: JSON/YAML configuration with these defaults
  - engine/simulation.go: Simulate
*/
package realestate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/sales-simulator/engine"
)

// =============================================================================
// COMMERCIAL CONFIGS
// =============================================================================

// StandardConfig returns the default commercial configuration.
func StandardConfig() engine.Config {
	return engine.Config{
		INCC:            decimal.RequireFromString("0.0045"),
		IPCA:            decimal.RequireFromString("0.004"),
		EntradaPct:      decimal.NewFromInt(30),
		EntradaMonths:   6,
		PayAtoPct:       decimal.Zero,
		PayInterPct:     decimal.NewFromInt(10),
		PayInterMonth:   12,
		PayChavesPct:    decimal.NewFromInt(60),
		PreLaunchMonths: 2,
		LaunchMonths:    3,
		DiscountPre:     decimal.NewFromInt(10),
		DiscountLaunch:  decimal.NewFromInt(5),
	}
}

// PreLaunchConfig favors early buyers: 15% off in a 4-phase pre-launch.
func PreLaunchConfig() engine.Config {
	cfg := StandardConfig()
	cfg.PayAtoPct = decimal.NewFromInt(5)
	cfg.EntradaPct = decimal.NewFromInt(25)
	cfg.EntradaMonths = 10
	cfg.PreLaunchMonths = 4
	cfg.LaunchMonths = 2
	cfg.DiscountPre = decimal.NewFromInt(15)
	cfg.DiscountLaunch = decimal.NewFromInt(7)
	return cfg
}

// LongEntradaConfig spreads half the price over 18 months.
func LongEntradaConfig() engine.Config {
	cfg := StandardConfig()
	cfg.EntradaPct = decimal.NewFromInt(50)
	cfg.EntradaMonths = 18
	cfg.PayInterPct = decimal.Zero
	cfg.PayChavesPct = decimal.NewFromInt(50)
	return cfg
}

// =============================================================================
// SAMPLE UNITS
// =============================================================================

// DefaultUnits returns the sample tower. Phases follow the sale order.
func DefaultUnits() []engine.Unit {
	specs := []struct {
		value    int64
		category engine.Category
		status   engine.Status
		desc     string
	}{
		{320000, CategoryGarden, StatusAvailable, "Garden 101"},
		{285000, CategoryApartment, StatusAvailable, "Apto 201"},
		{290000, CategoryApartment, StatusReserved, "Apto 202"},
		{210000, CategoryStudio, StatusAvailable, "Studio 301"},
		{298000, CategoryApartment, StatusAvailable, "Apto 401"},
		{305000, CategoryApartment, StatusSold, "Apto 501"},
		{520000, CategoryPenthouse, StatusAvailable, "Cobertura 1201"},
		{450000, CategoryCommercial, StatusAvailable, "Loja T01"},
	}

	units := make([]engine.Unit, len(specs))
	for i, s := range specs {
		units[i] = engine.Unit{
			ID:          i + 1,
			Description: s.desc,
			Value:       decimal.NewFromInt(s.value),
			Category:    s.category,
			Status:      s.status,
			Phase:       i,
		}
	}
	return units
}

// =============================================================================
// JSON PRESETS
// =============================================================================

// StandardConfigJSON returns the standard configuration as factory JSON,
// with a custom pre-launch discount and delivery share.
func StandardConfigJSON(discountPre, payChavesPct float64) string {
	return fmt.Sprintf(`{
  "incc": 0.0045,
  "ipca": 0.004,
  "entradaPct": 30,
  "entradaMonths": 6,
  "payAtoPct": 0,
  "payInterPct": 10,
  "payInterMonth": 12,
  "payChavesPct": %g,
  "preLaunchMonths": 2,
  "launchMonths": 3,
  "discountPre": %g,
  "discountLaunch": 5
}`, payChavesPct, discountPre)
}
