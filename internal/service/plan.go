package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/api/dto"
	"github.com/memberly/memberly/internal/domain/plan"
	"github.com/memberly/memberly/internal/domain/subscription"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/integration/invoicing"
	"github.com/memberly/memberly/internal/types"
)

// PlanService creates subscription plans with their child rows, the running
// subscription instance and the invoice for the next billing cycle.
type PlanService interface {
	// CreatePlan creates one plan. The plan graph and the subscription
	// instance are committed in one transaction; the next-cycle invoice and
	// the schedule row are created after commit, so a collaborator failure
	// never rolls back the plan.
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanSummary, error)

	// CreatePlans creates multiple plans, atomically or per plan.
	CreatePlans(ctx context.Context, req *dto.CreatePlansRequest) (*dto.CreatePlansResponse, error)
}

type planService struct {
	ServiceParams
	taxService     TaxService
	billingService BillingService
}

// NewPlanService creates a new PlanService
func NewPlanService(params ServiceParams) PlanService {
	return &planService{
		ServiceParams:  params,
		taxService:     NewTaxService(params),
		billingService: NewBillingService(params),
	}
}

// preparedPlan is a fully computed plan graph ready to insert: all ids are
// generated and the first billable cycle is priced and dated.
type preparedPlan struct {
	plan     *plan.Plan
	instance *subscription.Instance
	summary  *dto.PlanSummary

	seedInvoiceID     string
	clientAgreementID string
	nextCycle         int
	nextBillingDate   time.Time
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanSummary, error) {
	prep, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.insertGraph(ctx, prep)
	})
	if err != nil {
		return nil, err
	}

	if err := s.scheduleNext(ctx, prep); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Plan was created but scheduling the next cycle failed").
			WithReportableDetails(map[string]any{"plan_id": prep.plan.ID}).
			Mark(ierr.ErrHTTPClient)
	}

	s.Logger.Infow("created subscription plan",
		"plan_id", prep.plan.ID,
		"client_id", req.ClientID,
		"next_cycle", prep.summary.NextCycle,
		"next_billing_date", prep.summary.NextBillingDate,
	)

	return prep.summary, nil
}

func (s *planService) CreatePlans(ctx context.Context, req *dto.CreatePlansRequest) (*dto.CreatePlansResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.GetMode() == types.BatchModePerPlan {
		return s.createPlansPerPlan(ctx, req), nil
	}
	return s.createPlansAtomic(ctx, req)
}

// createPlansPerPlan creates each plan independently: a failed plan is
// reported in its result and does not affect the others.
func (s *planService) createPlansPerPlan(ctx context.Context, req *dto.CreatePlansRequest) *dto.CreatePlansResponse {
	resp := &dto.CreatePlansResponse{Results: make([]dto.PlanResult, 0, len(req.Plans))}
	for i := range req.Plans {
		summary, err := s.CreatePlan(ctx, &req.Plans[i])
		if err != nil {
			s.Logger.Errorw("plan create failed in per-plan batch",
				"index", i,
				"error", err,
			)
			resp.Failed++
			resp.Results = append(resp.Results, dto.PlanResult{Index: i, Error: err.Error()})
			continue
		}
		resp.Succeeded++
		resp.Results = append(resp.Results, dto.PlanResult{Index: i, Summary: summary})
	}
	return resp
}

// createPlansAtomic inserts every plan graph in one transaction: any insert
// failure rolls back all of them. Post-commit scheduling failures are
// reported per plan; the committed rows remain.
func (s *planService) createPlansAtomic(ctx context.Context, req *dto.CreatePlansRequest) (*dto.CreatePlansResponse, error) {
	prepared := make([]*preparedPlan, 0, len(req.Plans))
	for i := range req.Plans {
		prep, err := s.prepare(ctx, &req.Plans[i])
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Plan at index %d failed validation", i).
				Mark(ierr.ErrValidation)
		}
		prepared = append(prepared, prep)
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		for _, prep := range prepared {
			if err := s.insertGraph(ctx, prep); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CreatePlansResponse{Results: make([]dto.PlanResult, 0, len(prepared))}
	for i, prep := range prepared {
		if err := s.scheduleNext(ctx, prep); err != nil {
			s.Logger.Errorw("next cycle scheduling failed after commit",
				"plan_id", prep.plan.ID,
				"error", err,
			)
			resp.Failed++
			resp.Results = append(resp.Results, dto.PlanResult{Index: i, Error: err.Error()})
			continue
		}
		resp.Succeeded++
		resp.Results = append(resp.Results, dto.PlanResult{Index: i, Summary: prep.summary})
	}
	return resp, nil
}

func (s *planService) prepare(ctx context.Context, req *dto.CreatePlanRequest) (*preparedPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prep := &preparedPlan{seedInvoiceID: req.SeedInvoiceID}

	if req.Agreement != nil {
		clientAgreementID, err := s.AgreementClient.CreateAgreement(ctx, req.Agreement)
		if err != nil {
			return nil, err
		}
		prep.clientAgreementID = clientAgreementID
	}

	base := types.GetDefaultBaseModel(ctx)
	p := req.ToPlan(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN), base)

	for _, b := range req.CyclePrices {
		p.CyclePrices = append(p.CyclePrices, &plan.CyclePriceBand{
			ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CYCLE_PRICE_BAND),
			PlanID:           p.ID,
			CycleStart:       b.CycleStart,
			CycleEnd:         b.CycleEnd,
			Price:            b.Price,
			OverridePrice:    b.OverridePrice,
			DownPaymentUnits: b.DownPaymentUnits,
			BaseModel:        base,
		})
	}
	for _, id := range req.DiscountIDs {
		p.Discounts = append(p.Discounts, &plan.PlanDiscount{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN_DISCOUNT),
			PlanID:     p.ID,
			DiscountID: id,
			BaseModel:  base,
		})
	}
	for _, e := range req.Entitlements {
		p.Entitlements = append(p.Entitlements, &plan.Entitlement{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN_ENTITLEMENT),
			PlanID:    p.ID,
			ItemID:    e.ItemID,
			Quantity:  e.Quantity,
			BaseModel: base,
		})
	}
	for _, pr := range req.Promos {
		p.Promos = append(p.Promos, &plan.Promo{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN_PROMO),
			PlanID:      p.ID,
			Description: pr.Description,
			Amount:      pr.Amount,
			BaseModel:   base,
		})
	}
	if req.Term != nil {
		p.Term = &plan.Term{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN_TERM),
			PlanID:    p.ID,
			StartDate: req.Term.StartDate.UTC(),
			EndDate:   req.Term.EndDate,
			BaseModel: base,
		}
	}
	prep.plan = p
	prep.summary = &dto.PlanSummary{PlanID: p.ID}

	// Without a term and a cycle price there is nothing to schedule: the
	// plan is stored as a template only.
	if p.Term == nil || len(p.CyclePrices) == 0 {
		return prep, nil
	}

	currentCycle := req.CurrentCycle
	if currentCycle < 1 {
		currentCycle = 1
	}
	prep.nextCycle = currentCycle + 1

	nextDate, err := s.billingService.NextBillingDate(ctx, p.Term.StartDate, p.FrequencyID, p.IntervalCount, p.BillingDayRuleID, prep.nextCycle)
	if err != nil {
		return nil, err
	}
	prep.nextBillingDate = nextDate

	net, taxAmount, total, err := s.priceCycle(ctx, p, req.LevelID, prep.nextCycle)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prep.instance = &subscription.Instance{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_INSTANCE),
		PlanID:             p.ID,
		ClientID:           req.ClientID,
		ClientAgreementID:  types.ToNillableString(prep.clientAgreementID),
		StartDate:          p.Term.StartDate,
		EndDate:            p.Term.EndDate,
		NextBillingDate:    &nextDate,
		CurrentCycle:       currentCycle,
		SubscriptionStatus: subscription.StatusAt(p.Term.StartDate, now),
		BaseModel:          base,
	}

	prep.summary.InstanceID = prep.instance.ID
	prep.summary.NextCycle = prep.nextCycle
	prep.summary.NextBillingDate = &nextDate
	prep.summary.FirstCycleNet = net
	prep.summary.FirstCycleTax = taxAmount
	prep.summary.FirstCycleTotal = total

	return prep, nil
}

// priceCycle computes the net, tax and total charge of one plan cycle: the
// band price scaled by the entitled quantity, less the promo amounts, never
// below zero, then taxed.
func (s *planService) priceCycle(ctx context.Context, p *plan.Plan, levelID string, cycle int) (net, taxAmount, total decimal.Decimal, err error) {
	band := plan.ResolveBand(p.CyclePrices, cycle)
	if band == nil {
		s.Logger.Warnw("no price band covers the cycle, charging zero",
			"plan_id", p.ID,
			"cycle", cycle,
		)
		return decimal.Zero, decimal.Zero, decimal.Zero, nil
	}

	quantity := decimal.Zero
	for _, e := range p.Entitlements {
		quantity = quantity.Add(e.Quantity)
	}
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}

	net = band.EffectivePrice().Mul(quantity)
	for _, promo := range p.Promos {
		net = net.Sub(promo.Amount)
	}
	if net.IsNegative() {
		net = decimal.Zero
	}
	net = types.RoundCurrency(net)

	taxLines, err := s.taxService.ResolveTaxes(ctx, p.ItemID, levelID, net)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	for _, line := range taxLines {
		taxAmount = taxAmount.Add(line.Amount)
	}

	total = types.RoundCurrency(net.Add(taxAmount))
	return net, taxAmount, total, nil
}

// insertGraph persists the plan header, its child rows and the subscription
// instance. Must run inside a transaction.
func (s *planService) insertGraph(ctx context.Context, prep *preparedPlan) error {
	p := prep.plan
	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return err
	}
	if len(p.CyclePrices) > 0 {
		if err := s.PlanRepo.CreateCyclePrices(ctx, p.CyclePrices); err != nil {
			return err
		}
	}
	if len(p.Discounts) > 0 {
		if err := s.PlanRepo.CreateDiscounts(ctx, p.Discounts); err != nil {
			return err
		}
	}
	if len(p.Entitlements) > 0 {
		if err := s.PlanRepo.CreateEntitlements(ctx, p.Entitlements); err != nil {
			return err
		}
	}
	if len(p.Promos) > 0 {
		if err := s.PlanRepo.CreatePromos(ctx, p.Promos); err != nil {
			return err
		}
	}
	if p.Term != nil {
		if err := s.PlanRepo.CreateTerm(ctx, p.Term); err != nil {
			return err
		}
	}
	if prep.instance != nil {
		if err := s.SubscriptionRepo.CreateInstance(ctx, prep.instance); err != nil {
			return err
		}
	}
	return nil
}

// scheduleNext creates the next-cycle invoice via the invoicing collaborator
// and records the schedule row. Runs after the plan graph is committed.
func (s *planService) scheduleNext(ctx context.Context, prep *preparedPlan) error {
	if prep.instance == nil {
		return nil
	}
	if prep.seedInvoiceID == "" {
		s.Logger.Debugw("no seed invoice on plan create, skipping next cycle invoice",
			"plan_id", prep.plan.ID,
		)
		return nil
	}

	invoiceID, err := s.InvoicingClient.CreateFutureInvoice(ctx, &invoicing.CreateFutureInvoiceRequest{
		SeedInvoiceID:     prep.seedInvoiceID,
		CycleNumber:       prep.nextCycle,
		BillingDate:       prep.nextBillingDate,
		ActorID:           types.GetUserID(ctx),
		ClientAgreementID: prep.clientAgreementID,
	})
	if err != nil {
		return err
	}

	row := &subscription.ScheduleRow{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_SCHEDULE),
		InstanceID:  prep.instance.ID,
		CycleNumber: prep.nextCycle,
		BillingDate: prep.nextBillingDate,
		InvoiceID:   invoiceID,
		Amount:      prep.summary.FirstCycleTotal,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := s.SubscriptionRepo.CreateSchedule(ctx, row); err != nil {
		return err
	}

	prep.summary.NextInvoiceID = invoiceID
	return nil
}
