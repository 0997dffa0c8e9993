package types

import (
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/samber/lo"
)

// DiscountCalculationType selects how a resolved discount amount is computed
// from the line it applies to.
type DiscountCalculationType string

const (
	// DiscountCalculationPercentage applies a clamped percentage of the line subtotal.
	DiscountCalculationPercentage DiscountCalculationType = "PERCENTAGE"
	// DiscountCalculationAmountPerQty applies a flat amount per purchased unit.
	DiscountCalculationAmountPerQty DiscountCalculationType = "AMOUNT_PER_QTY"
	// DiscountCalculationAmountPerLine applies a flat amount once per line.
	DiscountCalculationAmountPerLine DiscountCalculationType = "AMOUNT_PER_LINE"
)

func (t DiscountCalculationType) String() string {
	return string(t)
}

func (t DiscountCalculationType) Validate() error {
	allowedValues := []DiscountCalculationType{
		DiscountCalculationPercentage,
		DiscountCalculationAmountPerQty,
		DiscountCalculationAmountPerLine,
	}

	if !lo.Contains(allowedValues, t) {
		return ierr.NewError("invalid discount calculation type").
			WithHint("Invalid discount calculation type").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": t,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}
