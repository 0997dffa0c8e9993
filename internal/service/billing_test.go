package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/memberly/memberly/internal/domain/catalog"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/testutil"
	"github.com/memberly/memberly/internal/types"
)

type BillingServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service BillingService
	stores  *testStores
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	params, stores := newTestParams()
	s.stores = stores
	s.service = NewBillingService(params)

	stores.catalog.SeedFrequency(&catalog.Frequency{
		ID:     "freq_month",
		Name:   "Monthly",
		Period: types.BILLING_PERIOD_MONTHLY,
	})
	stores.catalog.SeedFrequency(&catalog.Frequency{
		ID:     "freq_week",
		Name:   "Weekly",
		Period: types.BILLING_PERIOD_WEEKLY,
	})
	stores.catalog.SeedBillingDayRule(&catalog.BillingDayRule{ID: "rule_first", Rule: "1"})
	stores.catalog.SeedBillingDayRule(&catalog.BillingDayRule{ID: "rule_last", Rule: "LAST"})
	stores.catalog.SeedBillingDayRule(&catalog.BillingDayRule{ID: "rule_monday", Rule: "MONDAY"})
}

func (s *BillingServiceSuite) date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *BillingServiceSuite) TestDayRuleBeforeAnchorAdvancesOnePeriod() {
	// Cycle 3 anchors at Mar 15; day 1 already passed, so the date moves to
	// the first of the following month.
	got, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 15), "freq_month", 1, "rule_first", 3)
	s.Require().NoError(err)
	s.True(got.Equal(s.date(2024, 4, 1)), "got %s", got)
}

func (s *BillingServiceSuite) TestNoRuleLeavesAnchorUnmodified() {
	got, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 15), "freq_month", 1, "", 2)
	s.Require().NoError(err)
	s.True(got.Equal(s.date(2024, 2, 15)), "got %s", got)
}

func (s *BillingServiceSuite) TestLastDayRuleClampsToMonthEnd() {
	got, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 10), "freq_month", 1, "rule_last", 2)
	s.Require().NoError(err)
	s.True(got.Equal(s.date(2024, 2, 29)), "got %s", got)
}

func (s *BillingServiceSuite) TestWeekdayRuleAdvancesForward() {
	// 2024-01-01 is a Monday; cycle 2 anchors on Monday Jan 8 and stays.
	got, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 1), "freq_week", 1, "rule_monday", 2)
	s.Require().NoError(err)
	s.True(got.Equal(s.date(2024, 1, 8)), "got %s", got)
}

func (s *BillingServiceSuite) TestIntervalCountScalesTheStep() {
	got, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 15), "freq_month", 2, "", 3)
	s.Require().NoError(err)
	s.True(got.Equal(s.date(2024, 5, 15)), "got %s", got)
}

func (s *BillingServiceSuite) TestUnknownFrequencyIsFatal() {
	_, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 15), "freq_missing", 1, "", 2)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestUnknownDayRuleIsFatal() {
	_, err := s.service.NextBillingDate(s.ctx, s.date(2024, 1, 15), "freq_month", 1, "rule_missing", 2)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}
