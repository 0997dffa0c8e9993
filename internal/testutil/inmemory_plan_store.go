package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/plan"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemoryPlanStore is an in-memory implementation of plan.Repository
type InMemoryPlanStore struct {
	mu           sync.RWMutex
	plans        map[string]*plan.Plan
	cyclePrices  map[string][]*plan.CyclePriceBand
	discounts    map[string][]*plan.PlanDiscount
	entitlements map[string][]*plan.Entitlement
	promos       map[string][]*plan.Promo
	terms        map[string]*plan.Term
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans:        make(map[string]*plan.Plan),
		cyclePrices:  make(map[string][]*plan.CyclePriceBand),
		discounts:    make(map[string][]*plan.PlanDiscount),
		entitlements: make(map[string][]*plan.Entitlement),
		promos:       make(map[string][]*plan.Promo),
		terms:        make(map[string]*plan.Term),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[p.ID]; ok {
		return ierr.NewError("plan already exists").
			WithHintf("Plan %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.plans[p.ID] = p
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.plans[id]
	if !ok {
		return nil, ierr.NewError("plan not found").
			WithHintf("Plan %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	p := *stored
	p.CyclePrices = s.cyclePrices[id]
	p.Term = s.terms[id]
	return &p, nil
}

func (s *InMemoryPlanStore) CreateCyclePrices(ctx context.Context, bands []*plan.CyclePriceBand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bands {
		s.cyclePrices[b.PlanID] = append(s.cyclePrices[b.PlanID], b)
	}
	return nil
}

func (s *InMemoryPlanStore) CreateDiscounts(ctx context.Context, discounts []*plan.PlanDiscount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range discounts {
		s.discounts[d.PlanID] = append(s.discounts[d.PlanID], d)
	}
	return nil
}

func (s *InMemoryPlanStore) CreateEntitlements(ctx context.Context, entitlements []*plan.Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entitlements {
		s.entitlements[e.PlanID] = append(s.entitlements[e.PlanID], e)
	}
	return nil
}

func (s *InMemoryPlanStore) CreatePromos(ctx context.Context, promos []*plan.Promo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range promos {
		s.promos[p.PlanID] = append(s.promos[p.PlanID], p)
	}
	return nil
}

func (s *InMemoryPlanStore) CreateTerm(ctx context.Context, term *plan.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term.PlanID] = term
	return nil
}

// SeedPlan stores a fully assembled plan with its child rows, for tests that
// resolve plan-template pricing.
func (s *InMemoryPlanStore) SeedPlan(p *plan.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = p
	s.cyclePrices[p.ID] = p.CyclePrices
	if p.Term != nil {
		s.terms[p.ID] = p.Term
	}
}

// Count returns the number of stored plans
func (s *InMemoryPlanStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}
