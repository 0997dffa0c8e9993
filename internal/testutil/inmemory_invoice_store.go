package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/invoice"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemoryInvoiceStore is an in-memory implementation of invoice.Repository
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[inv.ID]; ok {
		return ierr.NewError("invoice already exists").
			WithHintf("Invoice %s already exists", inv.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.invoices[inv.ID]
	if !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	stored.InvoiceStatus = inv.InvoiceStatus
	stored.Paid = inv.Paid
	stored.PaymentTransactionID = inv.PaymentTransactionID
	stored.UpdatedAt = inv.UpdatedAt
	stored.UpdatedBy = inv.UpdatedBy
	return nil
}

// Count returns the number of stored invoices
func (s *InMemoryInvoiceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}
