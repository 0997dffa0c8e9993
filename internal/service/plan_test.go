package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/memberly/memberly/internal/api/dto"
	"github.com/memberly/memberly/internal/domain/catalog"
	"github.com/memberly/memberly/internal/domain/tax"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/integration/agreement"
	"github.com/memberly/memberly/internal/testutil"
	"github.com/memberly/memberly/internal/types"
)

type PlanServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service PlanService
	stores  *testStores
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	params, stores := newTestParams()
	s.stores = stores
	s.service = NewPlanService(params)

	stores.catalog.SeedFrequency(&catalog.Frequency{
		ID:     "freq_month",
		Name:   "Monthly",
		Period: types.BILLING_PERIOD_MONTHLY,
	})
	stores.catalog.SeedBillingDayRule(&catalog.BillingDayRule{ID: "rule_first", Rule: "1"})

	stores.tax.SetDefaultTaxGroup("item_1", "tg_std")
	stores.tax.AddAllocation("level_root", &tax.RateAllocation{
		TaxGroupID: "tg_std",
		TaxRateID:  "rate_vat",
		Rate:       decimal.RequireFromString("4"),
	})
}

func (s *PlanServiceSuite) dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *PlanServiceSuite) planRequest() *dto.CreatePlanRequest {
	two := 2
	return &dto.CreatePlanRequest{
		Name:             "Gold Plan",
		ItemID:           "item_1",
		ClientID:         "client_1",
		LevelID:          "level_1",
		FrequencyID:      "freq_month",
		BillingDayRuleID: "rule_first",
		CyclePrices: []dto.CyclePriceBandRequest{
			{CycleStart: 1, CycleEnd: &two, Price: s.dec("60"), DownPaymentUnits: 1},
			{CycleStart: 3, Price: s.dec("50")},
		},
		Promos: []dto.PromoRequest{
			{Description: "founding member", Amount: s.dec("5")},
		},
		Term: &dto.TermRequest{
			StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		SeedInvoiceID: "inv_seed_1",
		CurrentCycle:  2,
	}
}

func (s *PlanServiceSuite) TestCreatePlanSchedulesNextCycle() {
	summary, err := s.service.CreatePlan(s.ctx, s.planRequest())
	s.Require().NoError(err)

	// Cycle 3 anchors at Mar 15; the day-1 rule rolls it to Apr 1. The cycle
	// is priced from the 3+ band: 50 less the 5 promo, taxed at 4%.
	s.Equal(3, summary.NextCycle)
	s.Require().NotNil(summary.NextBillingDate)
	s.True(summary.NextBillingDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		"got %s", summary.NextBillingDate)
	s.True(summary.FirstCycleNet.Equal(s.dec("45")), "net %s", summary.FirstCycleNet)
	s.True(summary.FirstCycleTax.Equal(s.dec("1.8")), "tax %s", summary.FirstCycleTax)
	s.True(summary.FirstCycleTotal.Equal(s.dec("46.8")), "total %s", summary.FirstCycleTotal)
	s.Equal("inv_future_1", summary.NextInvoiceID)

	s.Equal(1, s.stores.plan.Count())
	s.Equal(1, s.stores.subscription.InstanceCount())

	instance, err := s.stores.subscription.GetInstance(s.ctx, summary.InstanceID)
	s.Require().NoError(err)
	s.Equal(2, instance.CurrentCycle)
	s.Equal(types.SubscriptionStatusActive, instance.SubscriptionStatus)
	s.Require().NotNil(instance.NextBillingDate)
	s.True(instance.NextBillingDate.Equal(*summary.NextBillingDate))

	rows := s.stores.subscription.Schedules()
	s.Require().Len(rows, 1)
	s.Equal(3, rows[0].CycleNumber)
	s.Equal("inv_future_1", rows[0].InvoiceID)
	s.True(rows[0].Amount.Equal(s.dec("46.8")))

	s.Require().Len(s.stores.invoicing.Requests, 1)
	futureReq := s.stores.invoicing.Requests[0]
	s.Equal("inv_seed_1", futureReq.SeedInvoiceID)
	s.Equal(3, futureReq.CycleNumber)
	s.True(futureReq.BillingDate.Equal(*summary.NextBillingDate))
}

func (s *PlanServiceSuite) TestPlanWithoutTermIsTemplateOnly() {
	req := s.planRequest()
	req.Term = nil

	summary, err := s.service.CreatePlan(s.ctx, req)
	s.Require().NoError(err)

	s.NotEmpty(summary.PlanID)
	s.Empty(summary.InstanceID)
	s.Zero(summary.NextCycle)
	s.Nil(summary.NextBillingDate)

	s.Equal(1, s.stores.plan.Count())
	s.Equal(0, s.stores.subscription.InstanceCount())
	s.Empty(s.stores.subscription.Schedules())
	s.Equal(0, s.stores.invoicing.CallCount())

	// The bands are still stored for later purchases against the template.
	stored, err := s.stores.plan.Get(s.ctx, summary.PlanID)
	s.Require().NoError(err)
	s.Len(stored.CyclePrices, 2)
}

func (s *PlanServiceSuite) TestAgreementIsRegisteredBeforeInsert() {
	req := s.planRequest()
	req.Agreement = &agreement.AgreementMeta{
		ClientID:      "client_1",
		AgreementID:   "agr_1",
		LevelID:       "level_1",
		ContractStart: req.Term.StartDate,
	}

	summary, err := s.service.CreatePlan(s.ctx, req)
	s.Require().NoError(err)

	instance, err := s.stores.subscription.GetInstance(s.ctx, summary.InstanceID)
	s.Require().NoError(err)
	s.Require().NotNil(instance.ClientAgreementID)
	s.Equal("cag_1", *instance.ClientAgreementID)

	s.Require().Len(s.stores.invoicing.Requests, 1)
	s.Equal("cag_1", s.stores.invoicing.Requests[0].ClientAgreementID)
}

func (s *PlanServiceSuite) TestNoSeedInvoiceSkipsScheduling() {
	req := s.planRequest()
	req.SeedInvoiceID = ""

	summary, err := s.service.CreatePlan(s.ctx, req)
	s.Require().NoError(err)

	s.NotEmpty(summary.InstanceID)
	s.Empty(summary.NextInvoiceID)
	s.Equal(0, s.stores.invoicing.CallCount())
	s.Empty(s.stores.subscription.Schedules())
}

func (s *PlanServiceSuite) TestUncoveredNextCycleChargesZero() {
	req := s.planRequest()
	two := 2
	req.CyclePrices = []dto.CyclePriceBandRequest{
		{CycleStart: 1, CycleEnd: &two, Price: s.dec("60")},
	}

	summary, err := s.service.CreatePlan(s.ctx, req)
	s.Require().NoError(err)
	s.True(summary.FirstCycleNet.IsZero())
	s.True(summary.FirstCycleTotal.IsZero())

	rows := s.stores.subscription.Schedules()
	s.Require().Len(rows, 1)
	s.True(rows[0].Amount.IsZero())
}

func (s *PlanServiceSuite) TestSchedulingFailureDoesNotRollBackThePlan() {
	s.stores.invoicing.Err = ierr.NewError("invoicing service unavailable").
		WithHint("Invoicing service unavailable").
		Mark(ierr.ErrHTTPClient)

	_, err := s.service.CreatePlan(s.ctx, s.planRequest())
	s.Require().Error(err)
	s.True(ierr.IsHTTPClient(err))

	// The committed graph stays; only the schedule row is missing.
	s.Equal(1, s.stores.plan.Count())
	s.Equal(1, s.stores.subscription.InstanceCount())
	s.Empty(s.stores.subscription.Schedules())
}

func (s *PlanServiceSuite) TestAtomicBatchRollsBackOnAnyFailure() {
	bad := s.planRequest()
	bad.FrequencyID = ""

	_, err := s.service.CreatePlans(s.ctx, &dto.CreatePlansRequest{
		Plans: []dto.CreatePlanRequest{*s.planRequest(), *bad},
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	s.Equal(0, s.stores.plan.Count())
	s.Equal(0, s.stores.subscription.InstanceCount())
	s.Equal(0, s.stores.invoicing.CallCount())
}

func (s *PlanServiceSuite) TestPerPlanBatchIsolatesFailures() {
	bad := s.planRequest()
	bad.FrequencyID = ""

	resp, err := s.service.CreatePlans(s.ctx, &dto.CreatePlansRequest{
		Mode:  types.BatchModePerPlan,
		Plans: []dto.CreatePlanRequest{*s.planRequest(), *bad},
	})
	s.Require().NoError(err)

	s.Equal(1, resp.Succeeded)
	s.Equal(1, resp.Failed)
	s.Require().Len(resp.Results, 2)
	s.Require().NotNil(resp.Results[0].Summary)
	s.NotEmpty(resp.Results[1].Error)

	s.Equal(1, s.stores.plan.Count())
	s.Equal(1, s.stores.subscription.InstanceCount())
}

func (s *PlanServiceSuite) TestEmptyBatchIsRejected() {
	_, err := s.service.CreatePlans(s.ctx, &dto.CreatePlansRequest{})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
