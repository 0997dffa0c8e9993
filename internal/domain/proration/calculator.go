package proration

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/types"
)

// Calculator computes the fraction of the current billing month a first
// cycle actually covers.
type Calculator interface {
	// Factor returns the day-based fraction of the start date's month that
	// remains, inclusive of the start day, rounded to 6 decimal places and
	// always inside [0, 1].
	Factor(start time.Time) (decimal.Decimal, error)

	// ProratedPrice charges the first down-payment unit at the prorated
	// price and any remaining units at full price.
	ProratedPrice(fullPrice decimal.Decimal, units int, start time.Time) (decimal.Decimal, error)
}

// CalculatorType defines the type of proration calculation to use
type CalculatorType string

const (
	CalculatorTypeDay CalculatorType = "day"
)

// NewCalculator creates a proration calculator of the specified type.
func NewCalculator(calculatorType CalculatorType) Calculator {
	switch calculatorType {
	default:
		return &dayBasedCalculator{}
	}
}

// dayBasedCalculator implements the default day-based proration logic:
// factor = (daysInMonth - dayOfMonth(start) + 1) / daysInMonth.
type dayBasedCalculator struct{}

func (c *dayBasedCalculator) Factor(start time.Time) (decimal.Decimal, error) {
	if start.IsZero() {
		return decimal.Zero, ierr.NewError("proration start date is required").
			WithHint("A contract start date is required to prorate the first cycle").
			Mark(ierr.ErrValidation)
	}

	daysInMonth := types.DaysInMonth(start.Year(), start.Month())
	remainingDays := daysInMonth - start.Day() + 1

	factor := decimal.NewFromInt(int64(remainingDays)).
		Div(decimal.NewFromInt(int64(daysInMonth)))

	return types.RoundFactor(factor), nil
}

func (c *dayBasedCalculator) ProratedPrice(fullPrice decimal.Decimal, units int, start time.Time) (decimal.Decimal, error) {
	factor, err := c.Factor(start)
	if err != nil {
		return decimal.Zero, err
	}

	prorated := types.RoundCurrency(fullPrice.Mul(factor))

	// Additional down-payment units beyond the first are charged in full.
	if units > 1 {
		remainder := fullPrice.Mul(decimal.NewFromInt(int64(units - 1)))
		prorated = types.RoundCurrency(prorated.Add(remainder))
	}

	return prorated, nil
}
