package plan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func band(start int, end *int, price string) *CyclePriceBand {
	return &CyclePriceBand{
		CycleStart: start,
		CycleEnd:   end,
		Price:      decimal.RequireFromString(price),
	}
}

func TestCyclePriceBandContains(t *testing.T) {
	b := band(4, intPtr(12), "50")
	assert.False(t, b.Contains(3))
	assert.True(t, b.Contains(4))
	assert.True(t, b.Contains(12))
	assert.False(t, b.Contains(13))

	open := band(13, nil, "45")
	assert.True(t, open.Contains(13))
	assert.True(t, open.Contains(500))
	assert.False(t, open.Contains(12))
}

func TestCyclePriceBandEffectivePrice(t *testing.T) {
	b := band(1, nil, "60")
	assert.True(t, b.EffectivePrice().Equal(decimal.RequireFromString("60")))

	override := decimal.RequireFromString("39.99")
	b.OverridePrice = &override
	assert.True(t, b.EffectivePrice().Equal(override))
}

func TestResolveBand(t *testing.T) {
	bands := []*CyclePriceBand{
		band(1, nil, "60"),
		band(4, intPtr(12), "50"),
		band(13, nil, "45"),
	}

	tests := []struct {
		name          string
		cycle         int
		expectedPrice string
	}{
		{"first cycle hits the open base band", 1, "60"},
		{"cycle 4 prefers the more specific band", 4, "50"},
		{"cycle 12 still inside the middle band", 12, "50"},
		{"cycle 13 moves to the tail band", 13, "45"},
		{"far cycle stays on the tail band", 100, "45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBand(bands, tt.cycle)
			require.NotNil(t, got)
			assert.True(t, got.Price.Equal(decimal.RequireFromString(tt.expectedPrice)),
				"got %s, want %s", got.Price, tt.expectedPrice)
		})
	}

	assert.Nil(t, ResolveBand([]*CyclePriceBand{band(5, nil, "50")}, 2))
	assert.Nil(t, ResolveBand(nil, 1))
}
