package repository

import (
	"context"
	"database/sql"
	"errors"

	domainPayment "github.com/memberly/memberly/internal/domain/payment"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

type paymentRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db postgres.IClient, logger *logger.Logger) domainPayment.Repository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, txn *domainPayment.Transaction) error {
	q := r.db.GetQuerier(ctx)

	_, err := q.NamedExec(`
		INSERT INTO payment_transactions (
			id, invoice_id, client_id, amount, gateway_code, method_code, gateway_transaction_id,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :invoice_id, :client_id, :amount, :gateway_code, :method_code, :gateway_transaction_id,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`, txn)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create payment transaction").
			WithReportableDetails(map[string]any{
				"invoice_id":     txn.InvoiceID,
				"transaction_id": txn.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*domainPayment.Transaction, error) {
	q := r.db.GetQuerier(ctx)

	var txn domainPayment.Transaction
	err := q.GetContext(ctx, &txn,
		`SELECT * FROM payment_transactions WHERE invoice_id = $1 ORDER BY created_at LIMIT 1`,
		invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment transaction not found").
				WithHintf("Invoice %s has no payment transaction", invoiceID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment transaction").
			Mark(ierr.ErrDatabase)
	}
	return &txn, nil
}
