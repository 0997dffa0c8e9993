package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillingAnchor(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		unit     int
		period   BillingPeriod
		cycle    int
		expected time.Time
	}{
		{
			name:     "cycle 1 is the start itself",
			start:    date(2024, 1, 15),
			unit:     1,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    1,
			expected: date(2024, 1, 15),
		},
		{
			name:     "monthly cycle 3",
			start:    date(2024, 1, 15),
			unit:     1,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    3,
			expected: date(2024, 3, 15),
		},
		{
			name:     "monthly with interval 2",
			start:    date(2024, 1, 15),
			unit:     2,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    3,
			expected: date(2024, 5, 15),
		},
		{
			name:     "jan 31 clamps to leap feb 29",
			start:    date(2024, 1, 31),
			unit:     1,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    2,
			expected: date(2024, 2, 29),
		},
		{
			name:     "jan 31 clamps to feb 28 outside leap years",
			start:    date(2023, 1, 31),
			unit:     1,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    2,
			expected: date(2023, 2, 28),
		},
		{
			name:     "quarterly advances three months per cycle",
			start:    date(2024, 1, 15),
			unit:     1,
			period:   BILLING_PERIOD_QUARTERLY,
			cycle:    2,
			expected: date(2024, 4, 15),
		},
		{
			name:     "weekly advances seven days per cycle",
			start:    date(2024, 1, 1),
			unit:     1,
			period:   BILLING_PERIOD_WEEKLY,
			cycle:    3,
			expected: date(2024, 1, 15),
		},
		{
			name:     "daily",
			start:    date(2024, 1, 1),
			unit:     1,
			period:   BILLING_PERIOD_DAILY,
			cycle:    10,
			expected: date(2024, 1, 10),
		},
		{
			name:     "annual",
			start:    date(2024, 2, 29),
			unit:     1,
			period:   BILLING_PERIOD_ANNUAL,
			cycle:    2,
			expected: date(2025, 2, 28),
		},
		{
			name:     "zero unit defaults to 1",
			start:    date(2024, 1, 15),
			unit:     0,
			period:   BILLING_PERIOD_MONTHLY,
			cycle:    2,
			expected: date(2024, 2, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BillingAnchor(tt.start, tt.unit, tt.period, tt.cycle)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestBillingAnchorInvalidInput(t *testing.T) {
	_, err := BillingAnchor(date(2024, 1, 15), 1, BILLING_PERIOD_MONTHLY, 0)
	assert.Error(t, err)

	_, err = BillingAnchor(date(2024, 1, 15), 1, BillingPeriod("FORTNIGHTLY"), 2)
	assert.Error(t, err)
}

func TestAddClampedDate(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		years    int
		months   int
		days     int
		expected time.Time
	}{
		{"month move clamps to month end", date(2024, 1, 31), 0, 1, 0, date(2024, 2, 29)},
		{"year wrap", date(2024, 11, 15), 0, 2, 0, date(2025, 1, 15)},
		{"backward month move", date(2023, 3, 31), 0, -1, 0, date(2023, 2, 28)},
		{"day addition overflows into next month", date(2024, 1, 30), 0, 0, 5, date(2024, 2, 4)},
		{"plain day addition", date(2024, 1, 10), 0, 0, 7, date(2024, 1, 17)},
		{"leap year anniversary clamps", date(2024, 2, 29), 1, 0, 0, date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddClampedDate(tt.start, tt.years, tt.months, tt.days)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestNextPeriod(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), NextPeriod(date(2024, 1, 31), BILLING_PERIOD_MONTHLY))
	assert.Equal(t, date(2024, 1, 8), NextPeriod(date(2024, 1, 1), BILLING_PERIOD_WEEKLY))
	assert.Equal(t, date(2024, 4, 15), NextPeriod(date(2024, 1, 15), BILLING_PERIOD_QUARTERLY))
	assert.Equal(t, date(2025, 1, 15), NextPeriod(date(2024, 1, 15), BILLING_PERIOD_ANNUAL))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), LastDayOfMonth(date(2024, 2, 10)))
	assert.Equal(t, date(2024, 4, 30), LastDayOfMonth(date(2024, 4, 1)))
}
