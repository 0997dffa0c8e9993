package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact two places", "10.00", "10"},
		{"half rounds up", "10.005", "10.01"},
		{"below half rounds down", "10.004", "10"},
		{"many places", "33.333333", "33.33"},
		{"negative half rounds away from zero", "-10.005", "-10.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.input)
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, RoundCurrency(in).Equal(expected),
				"got %s, want %s", RoundCurrency(in), expected)
		})
	}
}

func TestApplyPercent(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		pct      string
		expected string
	}{
		{"whole percent", "200", "4", "8"},
		{"fractional percent", "199.99", "7.5", "15"},
		{"zero percent", "100", "0", "0"},
		{"rounds to cent", "10", "3.333", "0.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPercent(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.pct))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", got, tt.expected)
		})
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		min      string
		max      string
		expected string
	}{
		{"inside range", "15", "10", "20", "15"},
		{"below min raises to min", "5", "10", "20", "10"},
		{"above max lowers to max", "25", "10", "20", "20"},
		{"zero max means unbounded", "95", "10", "0", "95"},
		{"at min boundary", "10", "10", "20", "10"},
		{"at max boundary", "20", "10", "20", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPercent(
				decimal.RequireFromString(tt.rate),
				decimal.RequireFromString(tt.min),
				decimal.RequireFromString(tt.max),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", got, tt.expected)
		})
	}
}
