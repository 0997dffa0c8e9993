package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/memberly/memberly/internal/domain/discount"
)

// InMemoryDiscountStore is an in-memory implementation of discount.Repository
type InMemoryDiscountStore struct {
	mu        sync.RWMutex
	discounts map[string]*discount.Discount
}

func NewInMemoryDiscountStore() *InMemoryDiscountStore {
	return &InMemoryDiscountStore{
		discounts: make(map[string]*discount.Discount),
	}
}

func (s *InMemoryDiscountStore) ListEligible(ctx context.Context, itemID, levelID string, candidateIDs []string, asOf time.Time) ([]*discount.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eligible := make([]*discount.Discount, 0)
	for _, id := range candidateIDs {
		d, ok := s.discounts[id]
		if !ok || !d.EligibleAt(asOf) {
			continue
		}
		if d.ItemID != nil && *d.ItemID != itemID {
			continue
		}
		if d.LevelID != nil && *d.LevelID != levelID {
			continue
		}
		if !lo.ContainsBy(eligible, func(e *discount.Discount) bool { return e.ID == d.ID }) {
			eligible = append(eligible, d)
		}
	}
	return eligible, nil
}

// Seed stores a discount
func (s *InMemoryDiscountStore) Seed(d *discount.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discounts[d.ID] = d
}
