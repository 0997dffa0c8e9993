package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/tax"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemoryTaxStore is an in-memory implementation of tax.Repository with
// seed helpers for tests.
type InMemoryTaxStore struct {
	mu            sync.RWMutex
	levelGroups   map[string]string // itemID|levelID -> groupID
	defaultGroups map[string]string // itemID -> groupID
	allocations   map[string][]*tax.RateAllocation // groupID|levelID
}

func NewInMemoryTaxStore() *InMemoryTaxStore {
	return &InMemoryTaxStore{
		levelGroups:   make(map[string]string),
		defaultGroups: make(map[string]string),
		allocations:   make(map[string][]*tax.RateAllocation),
	}
}

func taxKey(a, b string) string { return a + "|" + b }

func (s *InMemoryTaxStore) GetLevelTaxGroupID(ctx context.Context, itemID, levelID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groupID, ok := s.levelGroups[taxKey(itemID, levelID)]
	if !ok || groupID == "" {
		return "", ierr.NewError("no level price row for item").
			WithHintf("Item %s has no price row at level %s", itemID, levelID).
			Mark(ierr.ErrNotFound)
	}
	return groupID, nil
}

func (s *InMemoryTaxStore) GetDefaultTaxGroupID(ctx context.Context, itemID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groupID, ok := s.defaultGroups[itemID]
	if !ok || groupID == "" {
		return "", ierr.NewError("item has no default tax group").
			WithHintf("Item %s has no default tax group", itemID).
			Mark(ierr.ErrNotFound)
	}
	return groupID, nil
}

func (s *InMemoryTaxStore) ListAllocations(ctx context.Context, taxGroupID, levelID string) ([]*tax.RateAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allocations[taxKey(taxGroupID, levelID)], nil
}

// SetLevelTaxGroup binds an item's level price row to a tax group
func (s *InMemoryTaxStore) SetLevelTaxGroup(itemID, levelID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levelGroups[taxKey(itemID, levelID)] = groupID
}

// SetDefaultTaxGroup binds an item to its default tax group
func (s *InMemoryTaxStore) SetDefaultTaxGroup(itemID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultGroups[itemID] = groupID
}

// AddAllocation registers a rate allocation of a group at a level
func (s *InMemoryTaxStore) AddAllocation(levelID string, allocation *tax.RateAllocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := taxKey(allocation.TaxGroupID, levelID)
	s.allocations[key] = append(s.allocations[key], allocation)
}
