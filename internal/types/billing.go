package types

import (
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/samber/lo"
)

// BillingPeriod is the frequency at which a subscription plan bills.
type BillingPeriod string

const (
	BILLING_PERIOD_DAILY     BillingPeriod = "DAILY"
	BILLING_PERIOD_WEEKLY    BillingPeriod = "WEEKLY"
	BILLING_PERIOD_MONTHLY   BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY BillingPeriod = "QUARTERLY"
	BILLING_PERIOD_ANNUAL    BillingPeriod = "YEARLY"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowedValues := []BillingPeriod{
		BILLING_PERIOD_DAILY,
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_QUARTERLY,
		BILLING_PERIOD_ANNUAL,
	}

	if !lo.Contains(allowedValues, p) {
		return ierr.NewError("invalid billing period").
			WithHint("Invalid billing period").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// IsMonthAligned reports whether the period advances in whole months,
// which is what day-of-month billing rules apply to.
func (p BillingPeriod) IsMonthAligned() bool {
	switch p {
	case BILLING_PERIOD_MONTHLY, BILLING_PERIOD_QUARTERLY, BILLING_PERIOD_ANNUAL:
		return true
	default:
		return false
	}
}

// ProrationStrategy controls whether the first cycle of a recurring item is
// charged for the full period or only for the fraction of the period covered.
type ProrationStrategy string

const (
	ProrationStrategyDaily ProrationStrategy = "DAILY"
	ProrationStrategyNone  ProrationStrategy = "NONE"
)

func (s ProrationStrategy) Validate() error {
	allowedValues := []ProrationStrategy{
		ProrationStrategyDaily,
		ProrationStrategyNone,
	}

	if !lo.Contains(allowedValues, s) {
		return ierr.NewError("invalid proration strategy").
			WithHint("Invalid proration strategy").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// BatchMode controls how a multi-plan create request is executed.
type BatchMode string

const (
	// BatchModeAtomic executes all plans in a single transaction and rolls
	// everything back on the first failure.
	BatchModeAtomic BatchMode = "atomic"
	// BatchModePerPlan executes each plan in its own transaction so failures
	// are isolated per plan.
	BatchModePerPlan BatchMode = "per_plan"
)

func (m BatchMode) Validate() error {
	allowedValues := []BatchMode{BatchModeAtomic, BatchModePerPlan}

	if !lo.Contains(allowedValues, m) {
		return ierr.NewError("invalid batch mode").
			WithHint("Invalid batch mode").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": m,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}
