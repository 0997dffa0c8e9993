package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/domain/payment"
	ierr "github.com/memberly/memberly/internal/errors"
)

// InMemoryPaymentStore is an in-memory implementation of payment.Repository
type InMemoryPaymentStore struct {
	mu           sync.RWMutex
	transactions map[string]*payment.Transaction
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		transactions: make(map[string]*payment.Transaction),
	}
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, txn *payment.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[txn.ID]; ok {
		return ierr.NewError("payment transaction already exists").
			WithHintf("Transaction %s already exists", txn.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.transactions[txn.ID] = txn
	return nil
}

func (s *InMemoryPaymentStore) GetByInvoiceID(ctx context.Context, invoiceID string) (*payment.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, txn := range s.transactions {
		if txn.InvoiceID == invoiceID {
			return txn, nil
		}
	}
	return nil, ierr.NewError("payment transaction not found").
		WithHintf("Invoice %s has no payment transaction", invoiceID).
		Mark(ierr.ErrNotFound)
}

// Count returns the number of stored transactions
func (s *InMemoryPaymentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
