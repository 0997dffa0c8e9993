package repository

import (
	"context"
	"database/sql"
	"errors"

	domainCatalog "github.com/memberly/memberly/internal/domain/catalog"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

type catalogRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db postgres.IClient, logger *logger.Logger) domainCatalog.Repository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *catalogRepository) GetEntityTypeName(ctx context.Context, entityTypeID string) (string, error) {
	q := r.db.GetQuerier(ctx)

	var name string
	err := q.GetContext(ctx, &name, `SELECT name FROM entity_types WHERE id = $1`, entityTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ierr.NewError("entity type not found").
				WithHintf("Entity type %s was not found", entityTypeID).
				Mark(ierr.ErrNotFound)
		}
		return "", ierr.WithError(err).
			WithHint("Failed to get entity type").
			Mark(ierr.ErrDatabase)
	}
	return name, nil
}

func (r *catalogRepository) ResolveEntityAndLevel(ctx context.Context, entityTypeID, entityID, levelID string) (string, string, error) {
	q := r.db.GetQuerier(ctx)

	if _, err := r.GetEntityTypeName(ctx, entityTypeID); err != nil {
		return "", "", err
	}

	var entityName string
	err := q.GetContext(ctx, &entityName, `SELECT name FROM items WHERE id = $1`, entityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ierr.NewError("item not found").
				WithHintf("Item %s was not found", entityID).
				Mark(ierr.ErrNotFound)
		}
		return "", "", ierr.WithError(err).
			WithHint("Failed to resolve item").
			Mark(ierr.ErrDatabase)
	}

	var levelName string
	err = q.GetContext(ctx, &levelName, `SELECT name FROM levels WHERE id = $1`, levelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ierr.NewError("level not found").
				WithHintf("Level %s was not found", levelID).
				Mark(ierr.ErrNotFound)
		}
		return "", "", ierr.WithError(err).
			WithHint("Failed to resolve level").
			Mark(ierr.ErrDatabase)
	}

	return entityName, levelName, nil
}

func (r *catalogRepository) GetFrequency(ctx context.Context, frequencyID string) (*domainCatalog.Frequency, error) {
	q := r.db.GetQuerier(ctx)

	var frequency domainCatalog.Frequency
	err := q.GetContext(ctx, &frequency, `SELECT * FROM billing_frequencies WHERE id = $1`, frequencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("billing frequency not found").
				WithHintf("Billing frequency %s was not found", frequencyID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get billing frequency").
			Mark(ierr.ErrDatabase)
	}
	return &frequency, nil
}

func (r *catalogRepository) GetBillingDayRule(ctx context.Context, ruleID string) (*domainCatalog.BillingDayRule, error) {
	q := r.db.GetQuerier(ctx)

	var rule domainCatalog.BillingDayRule
	err := q.GetContext(ctx, &rule, `SELECT * FROM billing_day_rules WHERE id = $1`, ruleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("billing day rule not found").
				WithHintf("Billing day rule %s was not found", ruleID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get billing day rule").
			Mark(ierr.ErrDatabase)
	}
	return &rule, nil
}
