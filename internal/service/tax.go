package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/domain/tax"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/types"
)

// TaxService resolves the taxes applicable to one invoice line.
type TaxService interface {
	// ResolveTaxes returns one tax line per rate allocation of the item's
	// effective tax group, each rounded to currency precision. A missing
	// group or empty allocation set resolves to no tax, never an error.
	ResolveTaxes(ctx context.Context, itemID, levelID string, lineBase decimal.Decimal) ([]*tax.TaxLine, error)
}

type taxService struct {
	ServiceParams
}

// NewTaxService creates a new TaxService
func NewTaxService(params ServiceParams) TaxService {
	return &taxService{
		ServiceParams: params,
	}
}

func (s *taxService) ResolveTaxes(ctx context.Context, itemID, levelID string, lineBase decimal.Decimal) ([]*tax.TaxLine, error) {
	groupID, err := s.effectiveTaxGroup(ctx, itemID, levelID)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Debugw("no tax group for item, charging zero tax",
				"item_id", itemID,
				"level_id", levelID,
			)
			return []*tax.TaxLine{}, nil
		}
		return nil, err
	}

	// Allocations are always read at the fixed reference level regardless of
	// the level the purchase was made at.
	allocations, err := s.TaxRepo.ListAllocations(ctx, groupID, s.Config.Billing.ReferenceLevelID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return []*tax.TaxLine{}, nil
		}
		return nil, err
	}

	lines := make([]*tax.TaxLine, 0, len(allocations))
	for _, a := range allocations {
		lines = append(lines, &tax.TaxLine{
			TaxGroupID: groupID,
			TaxRateID:  a.TaxRateID,
			Rate:       a.Rate,
			Amount:     types.ApplyPercent(lineBase, a.Rate),
		})
	}

	return lines, nil
}

// effectiveTaxGroup resolves the tax group from the item's level-scoped
// price row, falling back to the item's default group.
func (s *taxService) effectiveTaxGroup(ctx context.Context, itemID, levelID string) (string, error) {
	groupID, err := s.TaxRepo.GetLevelTaxGroupID(ctx, itemID, levelID)
	if err == nil {
		return groupID, nil
	}
	if !ierr.IsNotFound(err) {
		return "", err
	}

	return s.TaxRepo.GetDefaultTaxGroupID(ctx, itemID)
}
