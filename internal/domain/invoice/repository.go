package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations.
// Create persists the header and the full entity tree with its tax and
// discount child rows; callers control the transaction boundary via the
// postgres client.
type Repository interface {
	// Create creates a new invoice with its entity tree
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID including its entity tree
	Get(ctx context.Context, id string) (*Invoice, error)

	// UpdateStatus transitions the invoice status and payment linkage
	UpdateStatus(ctx context.Context, invoice *Invoice) error
}
