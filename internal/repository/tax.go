package repository

import (
	"context"
	"database/sql"
	"errors"

	domainTax "github.com/memberly/memberly/internal/domain/tax"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
	"github.com/memberly/memberly/internal/types"
)

type taxRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db postgres.IClient, logger *logger.Logger) domainTax.Repository {
	return &taxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taxRepository) GetLevelTaxGroupID(ctx context.Context, itemID, levelID string) (string, error) {
	q := r.db.GetQuerier(ctx)

	var groupID sql.NullString
	err := q.GetContext(ctx, &groupID, `
		SELECT tax_group_id FROM item_prices
		WHERE item_id = $1 AND level_id = $2 AND status = $3`,
		itemID, levelID, types.StatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ierr.NewError("no level price row for item").
				WithHintf("Item %s has no price row at level %s", itemID, levelID).
				Mark(ierr.ErrNotFound)
		}
		return "", ierr.WithError(err).
			WithHint("Failed to get level tax group").
			Mark(ierr.ErrDatabase)
	}
	if !groupID.Valid || groupID.String == "" {
		return "", ierr.NewError("level price row has no tax group").
			WithHintf("Item %s carries no tax group at level %s", itemID, levelID).
			Mark(ierr.ErrNotFound)
	}
	return groupID.String, nil
}

func (r *taxRepository) GetDefaultTaxGroupID(ctx context.Context, itemID string) (string, error) {
	q := r.db.GetQuerier(ctx)

	var groupID sql.NullString
	err := q.GetContext(ctx, &groupID,
		`SELECT default_tax_group_id FROM items WHERE id = $1`, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ierr.NewError("item not found").
				WithHintf("Item %s was not found", itemID).
				Mark(ierr.ErrNotFound)
		}
		return "", ierr.WithError(err).
			WithHint("Failed to get default tax group").
			Mark(ierr.ErrDatabase)
	}
	if !groupID.Valid || groupID.String == "" {
		return "", ierr.NewError("item has no default tax group").
			WithHintf("Item %s has no default tax group", itemID).
			Mark(ierr.ErrNotFound)
	}
	return groupID.String, nil
}

func (r *taxRepository) ListAllocations(ctx context.Context, taxGroupID, levelID string) ([]*domainTax.RateAllocation, error) {
	q := r.db.GetQuerier(ctx)

	allocations := []*domainTax.RateAllocation{}
	err := q.SelectContext(ctx, &allocations, `
		SELECT * FROM tax_rate_allocations
		WHERE tax_group_id = $1 AND level_id = $2 AND status = $3
		ORDER BY created_at, id`,
		taxGroupID, levelID, types.StatusActive)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tax rate allocations").
			Mark(ierr.ErrDatabase)
	}
	return allocations, nil
}
