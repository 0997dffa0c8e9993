package service

import (
	"context"
	"sort"
	"time"

	"github.com/memberly/memberly/internal/domain/discount"
)

// DiscountService picks the single best discount for one invoice line.
type DiscountService interface {
	// ResolveBestDiscount selects at most one discount from the candidate
	// ids: item-specific bindings beat any-item ones, exact level matches
	// beat level-agnostic ones, and the most recently created wins ties.
	// An empty candidate list or no eligible match resolves to nil, nil.
	ResolveBestDiscount(ctx context.Context, itemID, levelID string, candidateIDs []string) (*discount.Detail, error)
}

type discountService struct {
	ServiceParams
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(params ServiceParams) DiscountService {
	return &discountService{
		ServiceParams: params,
	}
}

func (s *discountService) ResolveBestDiscount(ctx context.Context, itemID, levelID string, candidateIDs []string) (*discount.Detail, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	eligible, err := s.DiscountRepo.ListEligible(ctx, itemID, levelID, candidateIDs, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		s.Logger.Debugw("no eligible discount among candidates",
			"item_id", itemID,
			"level_id", levelID,
			"candidates", candidateIDs,
		)
		return nil, nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]

		// Item-specific bindings before "available for any item"
		if (a.ItemID != nil) != (b.ItemID != nil) {
			return a.ItemID != nil
		}
		// Exact level match before level-agnostic
		if (a.LevelID != nil) != (b.LevelID != nil) {
			return a.LevelID != nil
		}
		// Most recently created first
		return a.CreatedAt.After(b.CreatedAt)
	})

	best := eligible[0]
	s.Logger.Debugw("resolved best discount",
		"item_id", itemID,
		"level_id", levelID,
		"discount_id", best.ID,
		"calculation_type", best.CalculationType,
	)

	return best.Detail(), nil
}
