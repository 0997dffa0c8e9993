package types

import (
	"strconv"
	"strings"
	"time"
)

// BillingDayRuleKind discriminates the parsed form of a billing day rule.
type BillingDayRuleKind string

const (
	BillingDayRuleNone       BillingDayRuleKind = "none"
	BillingDayRuleDayOfMonth BillingDayRuleKind = "day_of_month"
	BillingDayRuleWeekday    BillingDayRuleKind = "weekday"
	BillingDayRuleLastDay    BillingDayRuleKind = "last_day"
	BillingDayRuleAnnualDate BillingDayRuleKind = "annual_date"
)

// BillingDayRule is a parsed billing-day alignment rule. The raw text comes
// from reference data and is one of: a numeric day of month ("1".."31"), a
// weekday name ("MONDAY"), "LAST"/"LAST_DAY", or a fixed annual date "MM-DD".
type BillingDayRule struct {
	Kind    BillingDayRuleKind
	Day     int
	Weekday time.Weekday
	Month   time.Month

	raw string
}

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// ParseBillingDayRule parses the raw rule text. Unparseable text yields a
// rule of kind none, which aligns nothing; it is not an error.
func ParseBillingDayRule(raw string) BillingDayRule {
	text := strings.ToUpper(strings.TrimSpace(raw))
	rule := BillingDayRule{Kind: BillingDayRuleNone, raw: raw}

	if text == "" {
		return rule
	}

	if text == "LAST" || text == "LAST_DAY" {
		rule.Kind = BillingDayRuleLastDay
		return rule
	}

	if wd, ok := weekdayNames[text]; ok {
		rule.Kind = BillingDayRuleWeekday
		rule.Weekday = wd
		return rule
	}

	if month, day, ok := parseAnnualDate(text); ok {
		rule.Kind = BillingDayRuleAnnualDate
		rule.Month = month
		rule.Day = day
		return rule
	}

	if day, err := strconv.Atoi(text); err == nil && day >= 1 && day <= 31 {
		rule.Kind = BillingDayRuleDayOfMonth
		rule.Day = day
		return rule
	}

	return rule
}

func parseAnnualDate(text string) (time.Month, int, bool) {
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d < 1 || d > 31 {
		return 0, 0, false
	}
	return time.Month(m), d, true
}

// String returns the raw rule text.
func (r BillingDayRule) String() string {
	return r.raw
}

// Align moves the anchor date to the billing day described by the rule,
// within the constraints of the billing period:
//
//   - DAILY periods are never aligned.
//   - WEEKLY periods advance forward (never backward) 0-6 days to the named
//     weekday.
//   - Month-aligned periods move to the numeric day of month (clamped to the
//     month's length), the month's last day, or the fixed annual date. A
//     numeric day that lands before the anchor advances one further period
//     and is recomputed; an annual date before the anchor rolls to the next
//     year.
func (r BillingDayRule) Align(anchor time.Time, period BillingPeriod) time.Time {
	switch r.Kind {
	case BillingDayRuleNone:
		return anchor

	case BillingDayRuleWeekday:
		if period != BILLING_PERIOD_WEEKLY {
			return anchor
		}
		offset := (int(r.Weekday) - int(anchor.Weekday()) + 7) % 7
		return anchor.AddDate(0, 0, offset)

	case BillingDayRuleLastDay:
		if !period.IsMonthAligned() {
			return anchor
		}
		return LastDayOfMonth(anchor)

	case BillingDayRuleAnnualDate:
		if period != BILLING_PERIOD_ANNUAL {
			return anchor
		}
		aligned := withMonthDay(anchor, anchor.Year(), r.Month, r.Day)
		if aligned.Before(anchor) {
			aligned = withMonthDay(anchor, anchor.Year()+1, r.Month, r.Day)
		}
		return aligned

	case BillingDayRuleDayOfMonth:
		if !period.IsMonthAligned() {
			return anchor
		}
		aligned := withMonthDay(anchor, anchor.Year(), anchor.Month(), r.Day)
		if aligned.Before(anchor) {
			next := NextPeriod(anchor, period)
			aligned = withMonthDay(next, next.Year(), next.Month(), r.Day)
		}
		return aligned

	default:
		return anchor
	}
}

// withMonthDay builds a date in the given year/month with the day clamped to
// the month's length, preserving the anchor's clock and location.
func withMonthDay(anchor time.Time, year int, month time.Month, day int) time.Time {
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}
