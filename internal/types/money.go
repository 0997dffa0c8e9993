package types

import "github.com/shopspring/decimal"

// Currency amounts are stored with 2 decimal places, proration factors with 6.
const (
	CurrencyPrecision = 2
	FactorPrecision   = 6
)

// RoundCurrency rounds a monetary amount to 2 decimal places, half-up.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPrecision)
}

// RoundFactor rounds a proration factor to 6 decimal places, half-up.
func RoundFactor(d decimal.Decimal) decimal.Decimal {
	return d.Round(FactorPrecision)
}

// ApplyPercent returns base * pct / 100 rounded to currency precision.
func ApplyPercent(base decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return RoundCurrency(base.Mul(pct).Div(decimal.NewFromInt(100)))
}

// ClampPercent clamps a percentage rate into the inclusive [min, max] range.
// A zero max means no upper bound.
func ClampPercent(rate, min, max decimal.Decimal) decimal.Decimal {
	if rate.LessThan(min) {
		return min
	}
	if max.GreaterThan(decimal.Zero) && rate.GreaterThan(max) {
		return max
	}
	return rate
}
