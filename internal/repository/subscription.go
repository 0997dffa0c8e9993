package repository

import (
	"context"
	"database/sql"
	"errors"

	domainSubscription "github.com/memberly/memberly/internal/domain/subscription"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

type subscriptionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) domainSubscription.Repository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) CreateInstance(ctx context.Context, instance *domainSubscription.Instance) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO subscription_instances (
			id, plan_id, client_id, client_agreement_id, start_date, end_date,
			next_billing_date, last_billed_date, current_cycle, subscription_status,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :client_id, :client_agreement_id, :start_date, :end_date,
			:next_billing_date, :last_billed_date, :current_cycle, :subscription_status,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, instance)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription instance").
			WithReportableDetails(map[string]any{"plan_id": instance.PlanID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) GetInstance(ctx context.Context, id string) (*domainSubscription.Instance, error) {
	q := r.db.GetQuerier(ctx)

	var instance domainSubscription.Instance
	err := q.GetContext(ctx, &instance, `SELECT * FROM subscription_instances WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("subscription instance not found").
				WithHintf("Subscription instance %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription instance").
			Mark(ierr.ErrDatabase)
	}
	return &instance, nil
}

func (r *subscriptionRepository) UpdateInstance(ctx context.Context, instance *domainSubscription.Instance) error {
	q := r.db.GetQuerier(ctx)

	result, err := q.ExecContext(ctx, `
		UPDATE subscription_instances
		SET next_billing_date = $1, last_billed_date = $2, current_cycle = $3,
		    subscription_status = $4, updated_at = $5, updated_by = $6
		WHERE id = $7`,
		instance.NextBillingDate, instance.LastBilledDate, instance.CurrentCycle,
		instance.SubscriptionStatus, instance.UpdatedAt, instance.UpdatedBy, instance.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription instance").
			WithReportableDetails(map[string]any{"instance_id": instance.ID}).
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ierr.NewError("subscription instance not found").
			WithHintf("Subscription instance %s was not found", instance.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *subscriptionRepository) CreateSchedule(ctx context.Context, row *domainSubscription.ScheduleRow) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO billing_schedules (
			id, instance_id, cycle_number, billing_date, invoice_id, amount,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :instance_id, :cycle_number, :billing_date, :invoice_id, :amount,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create billing schedule row").
			WithReportableDetails(map[string]any{"instance_id": row.InstanceID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
