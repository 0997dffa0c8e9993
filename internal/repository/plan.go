package repository

import (
	"context"
	"database/sql"
	"errors"

	domainPlan "github.com/memberly/memberly/internal/domain/plan"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

type planRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db postgres.IClient, logger *logger.Logger) domainPlan.Repository {
	return &planRepository{
		db:     db,
		logger: logger,
	}
}

func (r *planRepository) Create(ctx context.Context, p *domainPlan.Plan) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO subscription_plans (
			id, name, item_id, frequency_id, interval_count, billing_day_rule_id,
			payment_method_id, proration_strategy,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :item_id, :frequency_id, :interval_count, :billing_day_rule_id,
			:payment_method_id, :proration_strategy,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan").
			WithReportableDetails(map[string]any{"plan_id": p.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*domainPlan.Plan, error) {
	q := r.db.GetQuerier(ctx)

	var p domainPlan.Plan
	err := q.GetContext(ctx, &p, `SELECT * FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("plan not found").
				WithHintf("Plan %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan").
			Mark(ierr.ErrDatabase)
	}

	err = q.SelectContext(ctx, &p.CyclePrices,
		`SELECT * FROM plan_cycle_prices WHERE plan_id = $1 ORDER BY cycle_start`, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan cycle prices").
			Mark(ierr.ErrDatabase)
	}

	var term domainPlan.Term
	err = q.GetContext(ctx, &term, `SELECT * FROM plan_terms WHERE plan_id = $1`, id)
	if err == nil {
		p.Term = &term
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan term").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *planRepository) CreateCyclePrices(ctx context.Context, bands []*domainPlan.CyclePriceBand) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO plan_cycle_prices (
			id, plan_id, cycle_start, cycle_end, price, override_price, down_payment_units,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :cycle_start, :cycle_end, :price, :override_price, :down_payment_units,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, bands)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan cycle prices").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) CreateDiscounts(ctx context.Context, discounts []*domainPlan.PlanDiscount) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO plan_discounts (
			id, plan_id, discount_id,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :discount_id,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, discounts)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan discounts").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) CreateEntitlements(ctx context.Context, entitlements []*domainPlan.Entitlement) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO plan_entitlements (
			id, plan_id, item_id, quantity,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :item_id, :quantity,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, entitlements)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan entitlements").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) CreatePromos(ctx context.Context, promos []*domainPlan.Promo) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO plan_promos (
			id, plan_id, description, amount,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :description, :amount,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, promos)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan promos").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) CreateTerm(ctx context.Context, term *domainPlan.Term) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO plan_terms (
			id, plan_id, start_date, end_date,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :start_date, :end_date,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, term)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan term").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
