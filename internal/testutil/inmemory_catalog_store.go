package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/catalog"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemoryCatalogStore is an in-memory implementation of catalog.Repository
// with seed helpers for tests.
type InMemoryCatalogStore struct {
	mu          sync.RWMutex
	entityTypes map[string]string
	items       map[string]string
	levels      map[string]string
	frequencies map[string]*catalog.Frequency
	rules       map[string]*catalog.BillingDayRule
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		entityTypes: make(map[string]string),
		items:       make(map[string]string),
		levels:      make(map[string]string),
		frequencies: make(map[string]*catalog.Frequency),
		rules:       make(map[string]*catalog.BillingDayRule),
	}
}

func (s *InMemoryCatalogStore) GetEntityTypeName(ctx context.Context, entityTypeID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.entityTypes[entityTypeID]
	if !ok {
		return "", ierr.NewError("entity type not found").
			WithHintf("Entity type %s was not found", entityTypeID).
			Mark(ierr.ErrNotFound)
	}
	return name, nil
}

func (s *InMemoryCatalogStore) ResolveEntityAndLevel(ctx context.Context, entityTypeID, entityID, levelID string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.entityTypes[entityTypeID]; !ok {
		return "", "", ierr.NewError("entity type not found").
			WithHintf("Entity type %s was not found", entityTypeID).
			Mark(ierr.ErrNotFound)
	}
	entityName, ok := s.items[entityID]
	if !ok {
		return "", "", ierr.NewError("item not found").
			WithHintf("Item %s was not found", entityID).
			Mark(ierr.ErrNotFound)
	}
	levelName, ok := s.levels[levelID]
	if !ok {
		return "", "", ierr.NewError("level not found").
			WithHintf("Level %s was not found", levelID).
			Mark(ierr.ErrNotFound)
	}
	return entityName, levelName, nil
}

func (s *InMemoryCatalogStore) GetFrequency(ctx context.Context, frequencyID string) (*catalog.Frequency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frequency, ok := s.frequencies[frequencyID]
	if !ok {
		return nil, ierr.NewError("billing frequency not found").
			WithHintf("Billing frequency %s was not found", frequencyID).
			Mark(ierr.ErrNotFound)
	}
	return frequency, nil
}

func (s *InMemoryCatalogStore) GetBillingDayRule(ctx context.Context, ruleID string) (*catalog.BillingDayRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, ok := s.rules[ruleID]
	if !ok {
		return nil, ierr.NewError("billing day rule not found").
			WithHintf("Billing day rule %s was not found", ruleID).
			Mark(ierr.ErrNotFound)
	}
	return rule, nil
}

// SeedEntityType registers an entity type
func (s *InMemoryCatalogStore) SeedEntityType(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entityTypes[id] = name
}

// SeedItem registers an item
func (s *InMemoryCatalogStore) SeedItem(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = name
}

// SeedLevel registers a level
func (s *InMemoryCatalogStore) SeedLevel(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[id] = name
}

// SeedFrequency registers a billing frequency
func (s *InMemoryCatalogStore) SeedFrequency(f *catalog.Frequency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frequencies[f.ID] = f
}

// SeedBillingDayRule registers a billing day rule
func (s *InMemoryCatalogStore) SeedBillingDayRule(r *catalog.BillingDayRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.ID] = r
}
