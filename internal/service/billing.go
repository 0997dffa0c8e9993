package service

import (
	"context"
	"time"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/types"
)

// BillingService computes billing dates for subscription cycles.
type BillingService interface {
	// NextBillingDate returns the billing date of the given cycle number.
	// The contract start is advanced by (cycleNumber-1) * intervalCount
	// periods of the plan frequency, then aligned to the billing-day rule.
	// A zero or negative interval defaults to 1; an empty rule id or an
	// unparseable rule leaves the anchor unmodified.
	NextBillingDate(ctx context.Context, start time.Time, frequencyID string, intervalCount int, billingDayRuleID string, cycleNumber int) (time.Time, error)
}

type billingService struct {
	ServiceParams
}

// NewBillingService creates a new BillingService
func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) NextBillingDate(ctx context.Context, start time.Time, frequencyID string, intervalCount int, billingDayRuleID string, cycleNumber int) (time.Time, error) {
	frequency, err := s.CatalogRepo.GetFrequency(ctx, frequencyID)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Unknown billing frequency %s", frequencyID).
			Mark(ierr.ErrNotFound)
	}
	if err := frequency.Period.Validate(); err != nil {
		return time.Time{}, err
	}

	ruleText := ""
	if billingDayRuleID != "" {
		rule, err := s.CatalogRepo.GetBillingDayRule(ctx, billingDayRuleID)
		if err != nil {
			return time.Time{}, ierr.WithError(err).
				WithHintf("Unknown billing day rule %s", billingDayRuleID).
				Mark(ierr.ErrNotFound)
		}
		ruleText = rule.Rule
	}

	anchor, err := types.BillingAnchor(start, intervalCount, frequency.Period, cycleNumber)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHint("Failed to compute billing anchor").
			Mark(ierr.ErrValidation)
	}

	aligned := types.ParseBillingDayRule(ruleText).Align(anchor, frequency.Period)

	s.Logger.Debugw("computed next billing date",
		"start", start,
		"frequency", frequency.Period,
		"interval", intervalCount,
		"cycle", cycleNumber,
		"anchor", anchor,
		"aligned", aligned,
	)

	return aligned, nil
}
