package types

import (
	"fmt"
	"time"
)

// BillingAnchor advances start by (cycleNumber-1) * unit periods of the given
// frequency and returns the resulting anchor date for that cycle. Cycle 1 is
// the contract start itself. Month-based periods use clamped month math so a
// Jan 31 start lands on Feb 28/29, not Mar 2/3.
func BillingAnchor(start time.Time, unit int, period BillingPeriod, cycleNumber int) (time.Time, error) {
	if unit <= 0 {
		unit = 1
	}
	if cycleNumber < 1 {
		return start, fmt.Errorf("cycle number must be a positive integer, got %d", cycleNumber)
	}

	steps := (cycleNumber - 1) * unit

	switch period {
	case BILLING_PERIOD_DAILY:
		return AddClampedDate(start, 0, 0, steps), nil
	case BILLING_PERIOD_WEEKLY:
		// 1 week = 7 days
		return AddClampedDate(start, 0, 0, 7*steps), nil
	case BILLING_PERIOD_MONTHLY:
		return AddClampedDate(start, 0, steps, 0), nil
	case BILLING_PERIOD_QUARTERLY:
		// 1 quarter = 3 months
		return AddClampedDate(start, 0, 3*steps, 0), nil
	case BILLING_PERIOD_ANNUAL:
		return AddClampedDate(start, steps, 0, 0), nil
	default:
		return start, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// NextPeriod advances t by exactly one period of the given frequency.
func NextPeriod(t time.Time, period BillingPeriod) time.Time {
	switch period {
	case BILLING_PERIOD_DAILY:
		return AddClampedDate(t, 0, 0, 1)
	case BILLING_PERIOD_WEEKLY:
		return AddClampedDate(t, 0, 0, 7)
	case BILLING_PERIOD_MONTHLY:
		return AddClampedDate(t, 0, 1, 0)
	case BILLING_PERIOD_QUARTERLY:
		return AddClampedDate(t, 0, 3, 0)
	case BILLING_PERIOD_ANNUAL:
		return AddClampedDate(t, 1, 0, 0)
	default:
		return t
	}
}

// AddClampedDate adds years, months and days to t, clamping the day of month
// to the last valid day of the target month instead of letting it overflow.
// This differs from time.AddDate, which normalizes Feb 30 to Mar 2.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	// Calculate the proposed year and month
	newY := y + years
	newM := time.Month(int(m) + months)

	// If we move beyond December, it adjusts correctly,
	// for example adding 2 months to November will land on January next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	lastDay := DaysInMonth(newY, newM)

	newD := d + days
	if newD > lastDay {
		if days > 0 {
			// Day arithmetic overflows into the following months
			return time.Date(newY, newM, d, h, min, sec, t.Nanosecond(), t.Location()).
				AddDate(0, 0, days)
		}
		// Clamp a month/year move to the last valid day
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfMonth returns t moved to the last day of its month.
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
