package discount

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/memberly/memberly/internal/types"
)

func TestDiscountDetailClampsPercentage(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		min      string
		max      string
		expected string
	}{
		{"inside range", "15", "10", "20", "15"},
		{"below floor raises to floor", "5", "10", "20", "10"},
		{"above cap lowers to cap", "35", "10", "20", "20"},
		{"zero cap is unbounded", "95", "0", "0", "95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Discount{
				ID:              "disc_1",
				CalculationType: types.DiscountCalculationPercentage,
				Rate:            decimal.RequireFromString(tt.rate),
				MinPercent:      decimal.RequireFromString(tt.min),
				MaxPercent:      decimal.RequireFromString(tt.max),
			}
			detail := d.Detail()
			assert.True(t, detail.Rate.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", detail.Rate, tt.expected)
		})
	}
}

func TestDetailApply(t *testing.T) {
	subtotal := decimal.RequireFromString("200")
	quantity := decimal.RequireFromString("2")

	pct := &Detail{CalculationType: types.DiscountCalculationPercentage, Rate: decimal.RequireFromString("10")}
	assert.True(t, pct.Apply(subtotal, quantity).Equal(decimal.RequireFromString("20")))

	perQty := &Detail{CalculationType: types.DiscountCalculationAmountPerQty, FlatAmount: decimal.RequireFromString("2.50")}
	assert.True(t, perQty.Apply(subtotal, quantity).Equal(decimal.RequireFromString("5")))

	perLine := &Detail{CalculationType: types.DiscountCalculationAmountPerLine, FlatAmount: decimal.RequireFromString("7.50")}
	assert.True(t, perLine.Apply(subtotal, quantity).Equal(decimal.RequireFromString("7.5")))

	unknown := &Detail{CalculationType: types.DiscountCalculationType("RANDOM")}
	assert.True(t, unknown.Apply(subtotal, quantity).IsZero())
}

func TestEligibleAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	d := &Discount{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		BaseModel: types.BaseModel{Status: types.StatusActive},
	}
	assert.True(t, d.EligibleAt(now))
	assert.False(t, d.EligibleAt(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, d.EligibleAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	d.EndDate = nil
	assert.True(t, d.EligibleAt(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))

	d.Status = types.StatusInactive
	assert.False(t, d.EligibleAt(now))
}
