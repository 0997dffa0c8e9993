package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/types"
)

// Discount is a configured discount. A nil ItemID means the discount is
// available for any item; a nil LevelID means it applies at any level.
type Discount struct {
	ID              string                        `db:"id" json:"id"`
	Name            string                        `db:"name" json:"name"`
	AdjustmentID    string                        `db:"adjustment_id" json:"adjustment_id"`
	CalculationType types.DiscountCalculationType `db:"calculation_type" json:"calculation_type"`
	Rate            decimal.Decimal               `db:"rate" json:"rate"`
	MinPercent      decimal.Decimal               `db:"min_percent" json:"min_percent"`
	MaxPercent      decimal.Decimal               `db:"max_percent" json:"max_percent"`
	FlatAmount      decimal.Decimal               `db:"flat_amount" json:"flat_amount"`
	ItemID          *string                       `db:"item_id" json:"item_id,omitempty"`
	LevelID         *string                       `db:"level_id" json:"level_id,omitempty"`
	StartDate       time.Time                     `db:"start_date" json:"start_date"`
	EndDate         *time.Time                    `db:"end_date" json:"end_date,omitempty"`
	types.BaseModel
}

// EligibleAt reports whether the discount is active and inside its validity
// window at the given instant. A nil end date means open-ended.
func (d *Discount) EligibleAt(at time.Time) bool {
	if d.Status != types.StatusActive {
		return false
	}
	if at.Before(d.StartDate) {
		return false
	}
	if d.EndDate != nil && at.After(*d.EndDate) {
		return false
	}
	return true
}

// Detail is a resolved discount ready to be applied to one invoice line.
type Detail struct {
	DiscountID      string                        `json:"discount_id"`
	AdjustmentID    string                        `json:"adjustment_id"`
	CalculationType types.DiscountCalculationType `json:"calculation_type"`
	Rate            decimal.Decimal               `json:"rate"`
	FlatAmount      decimal.Decimal               `json:"flat_amount"`
}

// Detail builds the applied form of the discount. Percentage rates are
// clamped into [MinPercent, MaxPercent] at resolution time.
func (d *Discount) Detail() *Detail {
	detail := &Detail{
		DiscountID:      d.ID,
		AdjustmentID:    d.AdjustmentID,
		CalculationType: d.CalculationType,
		FlatAmount:      d.FlatAmount,
	}
	if d.CalculationType == types.DiscountCalculationPercentage {
		detail.Rate = types.ClampPercent(d.Rate, d.MinPercent, d.MaxPercent)
	}
	return detail
}

// Apply computes the discount amount for a line with the given subtotal and
// quantity, rounded to currency precision.
func (d *Detail) Apply(lineSubtotal, quantity decimal.Decimal) decimal.Decimal {
	switch d.CalculationType {
	case types.DiscountCalculationPercentage:
		return types.ApplyPercent(lineSubtotal, d.Rate)
	case types.DiscountCalculationAmountPerQty:
		return types.RoundCurrency(d.FlatAmount.Mul(quantity))
	case types.DiscountCalculationAmountPerLine:
		return types.RoundCurrency(d.FlatAmount)
	default:
		return decimal.Zero
	}
}
