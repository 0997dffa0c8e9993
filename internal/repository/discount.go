package repository

import (
	"context"
	"time"

	"github.com/lib/pq"

	domainDiscount "github.com/memberly/memberly/internal/domain/discount"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
	"github.com/memberly/memberly/internal/types"
)

type discountRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db postgres.IClient, logger *logger.Logger) domainDiscount.Repository {
	return &discountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *discountRepository) ListEligible(ctx context.Context, itemID, levelID string, candidateIDs []string, asOf time.Time) ([]*domainDiscount.Discount, error) {
	q := r.db.GetQuerier(ctx)

	discounts := []*domainDiscount.Discount{}
	err := q.SelectContext(ctx, &discounts, `
		SELECT * FROM discounts
		WHERE id = ANY($1)
		  AND status = $2
		  AND (item_id IS NULL OR item_id = $3)
		  AND (level_id IS NULL OR level_id = $4)
		  AND start_date <= $5
		  AND (end_date IS NULL OR end_date >= $5)`,
		pq.Array(candidateIDs), types.StatusActive, itemID, levelID, asOf)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list eligible discounts").
			WithReportableDetails(map[string]any{"item_id": itemID}).
			Mark(ierr.ErrDatabase)
	}
	return discounts, nil
}
