/*
discount.go - Phase-based price discounts

PURPOSE:
  Maps a unit's sale phase to a price multiplier. Units sold early carry
  a deeper discount; after launch the list price applies.

BANDS:
  phase <  PreLaunchMonths                  -> pre-launch, DiscountPre
  phase <  PreLaunchMonths + LaunchMonths   -> launch, DiscountLaunch
  otherwise                                 -> post-launch, no discount

  Comparisons are strict less-than. Post-launch is the fallback.

EXAMPLE:
  policy := DiscountPolicy{PreLaunchMonths: 2, LaunchMonths: 3,
      DiscountPre: decimal.NewFromInt(10), DiscountLaunch: decimal.NewFromInt(5)}

  policy.Apply(decimal.NewFromInt(1000), 0) // 900
  policy.Apply(decimal.NewFromInt(1000), 2) // 950
  policy.Apply(decimal.NewFromInt(1000), 5) // 1000
*/
package engine

import "github.com/shopspring/decimal"

// Phase names the discount band a unit falls into.
type Phase string

const (
	PhasePreLaunch  Phase = "pre_launch"
	PhaseLaunch     Phase = "launch"
	PhasePostLaunch Phase = "post_launch"
)

// DiscountPolicy holds the band boundaries and discount percentages.
type DiscountPolicy struct {
	PreLaunchMonths int
	LaunchMonths    int
	DiscountPre     decimal.Decimal // percent, 0-100
	DiscountLaunch  decimal.Decimal // percent, 0-100
}

// PhaseFor returns the band for a phase index.
func (p DiscountPolicy) PhaseFor(phaseIndex int) Phase {
	switch {
	case phaseIndex < p.PreLaunchMonths:
		return PhasePreLaunch
	case phaseIndex < p.PreLaunchMonths+p.LaunchMonths:
		return PhaseLaunch
	default:
		return PhasePostLaunch
	}
}

// Apply returns the discounted value for a unit sold at phaseIndex.
// Inputs are not sanitized.
func (p DiscountPolicy) Apply(baseValue decimal.Decimal, phaseIndex int) decimal.Decimal {
	switch p.PhaseFor(phaseIndex) {
	case PhasePreLaunch:
		return baseValue.Mul(one.Sub(Pct(p.DiscountPre)))
	case PhaseLaunch:
		return baseValue.Mul(one.Sub(Pct(p.DiscountLaunch)))
	default:
		return baseValue
	}
}

// ApplyDiscount applies the config's discount policy.
func ApplyDiscount(cfg Config, baseValue decimal.Decimal, phaseIndex int) decimal.Decimal {
	return cfg.Discount().Apply(baseValue, phaseIndex)
}
