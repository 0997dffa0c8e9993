package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/subscription"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemorySubscriptionStore is an in-memory implementation of
// subscription.Repository
type InMemorySubscriptionStore struct {
	mu        sync.RWMutex
	instances map[string]*subscription.Instance
	schedules []*subscription.ScheduleRow
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		instances: make(map[string]*subscription.Instance),
	}
}

func (s *InMemorySubscriptionStore) CreateInstance(ctx context.Context, instance *subscription.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[instance.ID]; ok {
		return ierr.NewError("subscription instance already exists").
			WithHintf("Instance %s already exists", instance.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.instances[instance.ID] = instance
	return nil
}

func (s *InMemorySubscriptionStore) GetInstance(ctx context.Context, id string) (*subscription.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, ok := s.instances[id]
	if !ok {
		return nil, ierr.NewError("subscription instance not found").
			WithHintf("Subscription instance %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return instance, nil
}

func (s *InMemorySubscriptionStore) UpdateInstance(ctx context.Context, instance *subscription.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[instance.ID]; !ok {
		return ierr.NewError("subscription instance not found").
			WithHintf("Subscription instance %s was not found", instance.ID).
			Mark(ierr.ErrNotFound)
	}
	s.instances[instance.ID] = instance
	return nil
}

func (s *InMemorySubscriptionStore) CreateSchedule(ctx context.Context, row *subscription.ScheduleRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = append(s.schedules, row)
	return nil
}

// Schedules returns the stored schedule rows
func (s *InMemorySubscriptionStore) Schedules() []*subscription.ScheduleRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedules
}

// InstanceCount returns the number of stored instances
func (s *InMemorySubscriptionStore) InstanceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}
