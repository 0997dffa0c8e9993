package payment

import "context"

// Repository defines persistence for payment transactions.
type Repository interface {
	// Create inserts a payment transaction
	Create(ctx context.Context, txn *Transaction) error

	// GetByInvoiceID returns the transaction tied to an invoice,
	// ErrNotFound if the invoice has not been finalized yet.
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Transaction, error)
}
