package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/domain/plan"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/integration/agreement"
	"github.com/memberly/memberly/internal/types"
	"github.com/memberly/memberly/internal/validator"
)

// CreatePlanRequest creates a subscription plan with its child rows and,
// when a term and at least one cycle price are present, the subscription
// instance and next-cycle invoice.
type CreatePlanRequest struct {
	Name              string                  `json:"name" validate:"required"`
	ItemID            string                  `json:"item_id" validate:"required"`
	ClientID          string                  `json:"client_id" validate:"required"`
	LevelID           string                  `json:"level_id" validate:"required"`
	FrequencyID       string                  `json:"frequency_id" validate:"required"`
	IntervalCount     int                     `json:"interval_count"`
	BillingDayRuleID  string                  `json:"billing_day_rule_id"`
	PaymentMethodID   string                  `json:"payment_method_id"`
	ProrationStrategy types.ProrationStrategy `json:"proration_strategy"`

	CyclePrices  []CyclePriceBandRequest `json:"cycle_prices,omitempty"`
	DiscountIDs  []string                `json:"discount_ids,omitempty"`
	Entitlements []EntitlementRequest    `json:"entitlements,omitempty"`
	Promos       []PromoRequest          `json:"promos,omitempty"`
	Term         *TermRequest            `json:"term,omitempty"`

	// SeedInvoiceID is the invoice created at purchase time; the next-cycle
	// invoice is derived from it by the invoicing collaborator.
	SeedInvoiceID string `json:"seed_invoice_id,omitempty"`
	// CurrentCycle is the cycle covered by the seed invoice, defaulting to 1.
	CurrentCycle int `json:"current_cycle,omitempty"`

	Agreement *agreement.AgreementMeta `json:"agreement,omitempty"`
}

// CyclePriceBandRequest is one price band over an inclusive cycle range.
type CyclePriceBandRequest struct {
	CycleStart       int              `json:"cycle_start"`
	CycleEnd         *int             `json:"cycle_end,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	OverridePrice    *decimal.Decimal `json:"override_price,omitempty"`
	DownPaymentUnits int              `json:"down_payment_units,omitempty"`
}

// EntitlementRequest is a quantity of an item included per cycle.
type EntitlementRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PromoRequest is a fixed promotional amount deducted from a cycle charge.
type PromoRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// TermRequest is the contract window of the plan.
type TermRequest struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.ProrationStrategy != "" {
		if err := r.ProrationStrategy.Validate(); err != nil {
			return err
		}
	}
	for _, b := range r.CyclePrices {
		if b.CycleStart < 1 {
			return ierr.NewError("cycle_start must be positive").
				WithHint("Cycle price bands start at cycle 1").
				Mark(ierr.ErrValidation)
		}
		if b.CycleEnd != nil && *b.CycleEnd < b.CycleStart {
			return ierr.NewError("cycle_end must not precede cycle_start").
				WithHint("Cycle price band range is inclusive").
				Mark(ierr.ErrValidation)
		}
		if b.Price.IsNegative() {
			return ierr.NewError("cycle price must be non negative").
				WithHint("Cycle price must be non negative").
				Mark(ierr.ErrValidation)
		}
	}
	if r.Term != nil && r.Term.StartDate.IsZero() {
		return ierr.NewError("term start_date is required").
			WithHint("A plan term needs a start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPlan converts the request to the domain plan with generated ids.
func (r *CreatePlanRequest) ToPlan(planID string, base types.BaseModel) *plan.Plan {
	interval := r.IntervalCount
	if interval <= 0 {
		interval = 1
	}

	strategy := r.ProrationStrategy
	if strategy == "" {
		strategy = types.ProrationStrategyNone
	}

	return &plan.Plan{
		ID:                planID,
		Name:              r.Name,
		ItemID:            r.ItemID,
		FrequencyID:       r.FrequencyID,
		IntervalCount:     interval,
		BillingDayRuleID:  r.BillingDayRuleID,
		PaymentMethodID:   r.PaymentMethodID,
		ProrationStrategy: strategy,
		BaseModel:         base,
	}
}

// PlanSummary reports what a plan create produced.
type PlanSummary struct {
	PlanID          string          `json:"plan_id"`
	InstanceID      string          `json:"instance_id,omitempty"`
	NextCycle       int             `json:"next_cycle,omitempty"`
	NextBillingDate *time.Time      `json:"next_billing_date,omitempty"`
	NextInvoiceID   string          `json:"next_invoice_id,omitempty"`
	FirstCycleNet   decimal.Decimal `json:"first_cycle_net"`
	FirstCycleTax   decimal.Decimal `json:"first_cycle_tax"`
	FirstCycleTotal decimal.Decimal `json:"first_cycle_total"`
}

// CreatePlansRequest creates multiple plans in one call.
type CreatePlansRequest struct {
	Mode  types.BatchMode     `json:"mode"`
	Plans []CreatePlanRequest `json:"plans" validate:"required"`
}

func (r *CreatePlansRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	mode := r.Mode
	if mode == "" {
		mode = types.BatchModeAtomic
	}
	// Individual plans are validated as they are prepared, so a bad plan in
	// a per-plan batch fails alone instead of rejecting the whole request.
	return mode.Validate()
}

// GetMode returns the batch mode, defaulting to atomic.
func (r *CreatePlansRequest) GetMode() types.BatchMode {
	if r.Mode == "" {
		return types.BatchModeAtomic
	}
	return r.Mode
}

// PlanResult is the per-plan outcome of a batch create.
type PlanResult struct {
	Index   int          `json:"index"`
	Summary *PlanSummary `json:"summary,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// CreatePlansResponse aggregates a batch create.
type CreatePlansResponse struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []PlanResult `json:"results"`
}
