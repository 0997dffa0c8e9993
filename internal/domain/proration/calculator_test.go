package proration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDayBasedFactor(t *testing.T) {
	calc := NewCalculator(CalculatorTypeDay)

	tests := []struct {
		name  string
		start time.Time
		want  string
	}{
		{
			name:  "day 21 of a 30 day month",
			start: time.Date(2024, time.April, 21, 0, 0, 0, 0, time.UTC),
			want:  "0.333333",
		},
		{
			name:  "first day of month charges the full cycle",
			start: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			want:  "1",
		},
		{
			name:  "last day of month charges one day",
			start: time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
			want:  "0.033333",
		},
		{
			name:  "leap year February",
			start: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			want:  "0.517241",
		},
		{
			name:  "31 day month midpoint",
			start: time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
			want:  "0.516129",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, err := calc.Factor(tt.start)
			require.NoError(t, err)
			require.Equal(t, tt.want, factor.String())
		})
	}
}

func TestDayBasedFactorZeroStart(t *testing.T) {
	calc := NewCalculator(CalculatorTypeDay)

	_, err := calc.Factor(time.Time{})
	require.Error(t, err)
}

func TestProratedPrice(t *testing.T) {
	calc := NewCalculator(CalculatorTypeDay)
	start := time.Date(2024, time.April, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		fullPrice decimal.Decimal
		units     int
		want      string
	}{
		{
			name:      "single unit prorated",
			fullPrice: decimal.NewFromInt(100),
			units:     1,
			want:      "33.33",
		},
		{
			name:      "extra down payment units at full price",
			fullPrice: decimal.NewFromInt(100),
			units:     3,
			want:      "233.33",
		},
		{
			name:      "zero units treated as one",
			fullPrice: decimal.NewFromInt(100),
			units:     0,
			want:      "33.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ProratedPrice(tt.fullPrice, tt.units, start)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}
