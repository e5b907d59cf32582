/*
cashflow.go - Per-unit cash-flow construction

PURPOSE:
  Builds the 24-month payment vector for one unit. The unit's discounted
  price is split into four payment legs, each placed on the horizon:

    ato     month 0, in full
    entrada months 1..EntradaMonths, equal installments
    inter   month PayInterMonth, escalated by INCC (only if PayInterPct > 0)
    chaves  month 23, escalated by IPCA (always added, zero if PayChavesPct = 0)

  Legs landing on the same month accumulate.

DEGENERATE INPUT:
  The builder fails fast instead of writing outside the horizon:
  - EntradaMonths < 0                        -> InstallmentWindowError
  - EntradaMonths == 0 with a non-zero leg   -> InstallmentWindowError
  - EntradaMonths > 23                       -> MonthRangeError
  - PayInterPct > 0, PayInterMonth not 0..23 -> MonthRangeError

EXAMPLE:
  Unit 300000, phase 0, PreLaunchMonths 2, DiscountPre 10,
  EntradaPct 30 over 6 months, PayChavesPct 70:

    base price   270000
    months 1..6  13500 each
    month 23     189000 * (1+IPCA)^23
*/
package engine

import "github.com/shopspring/decimal"

// Legs are the payment totals of one unit before placement on the horizon.
type Legs struct {
	BasePrice decimal.Decimal
	Entrada   decimal.Decimal
	Ato       decimal.Decimal
	Inter     decimal.Decimal
	Chaves    decimal.Decimal
}

// SplitLegs computes the discounted price and the four leg totals.
func SplitLegs(unit Unit, phaseIndex int, cfg Config) Legs {
	base := ApplyDiscount(cfg, unit.Value, phaseIndex)
	return Legs{
		BasePrice: base,
		Entrada:   base.Mul(Pct(cfg.EntradaPct)),
		Ato:       base.Mul(Pct(cfg.PayAtoPct)),
		Inter:     base.Mul(Pct(cfg.PayInterPct)),
		Chaves:    base.Mul(Pct(cfg.PayChavesPct)),
	}
}

// BuildCashFlow constructs the monthly vector for one unit sold at phaseIndex.
func BuildCashFlow(unit Unit, phaseIndex int, cfg Config) (CashFlow, error) {
	var cf CashFlow

	legs := SplitLegs(unit, phaseIndex, cfg)
	if err := checkWindows(cfg, legs); err != nil {
		return cf, err
	}

	cf[SigningMonth] = cf[SigningMonth].Add(legs.Ato)

	if cfg.EntradaMonths > 0 {
		installment := legs.Entrada.Div(decimal.NewFromInt(int64(cfg.EntradaMonths)))
		for m := 1; m <= cfg.EntradaMonths; m++ {
			cf[m] = cf[m].Add(installment)
		}
	}

	if cfg.PayInterPct.IsPositive() {
		m := cfg.PayInterMonth
		cf[m] = cf[m].Add(cfg.InterIndex().Escalate(legs.Inter, m))
	}

	cf[DeliveryMonth] = cf[DeliveryMonth].Add(cfg.DeliveryIndex().Escalate(legs.Chaves, DeliveryMonth))

	return cf, nil
}

func checkWindows(cfg Config, legs Legs) error {
	if cfg.EntradaMonths < 0 || (cfg.EntradaMonths == 0 && !legs.Entrada.IsZero()) {
		return &InstallmentWindowError{Months: cfg.EntradaMonths, Total: legs.Entrada.String()}
	}
	if cfg.EntradaMonths > DeliveryMonth {
		return &MonthRangeError{Field: "entradaMonths", Month: cfg.EntradaMonths, Min: 1, Max: DeliveryMonth}
	}
	if cfg.PayInterPct.IsPositive() && (cfg.PayInterMonth < 0 || cfg.PayInterMonth > DeliveryMonth) {
		return &MonthRangeError{Field: "payInterMonth", Month: cfg.PayInterMonth, Min: 0, Max: DeliveryMonth}
	}
	return nil
}
