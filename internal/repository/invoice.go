package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	domainInvoice "github.com/memberly/memberly/internal/domain/invoice"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) domainInvoice.Repository {
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

const insertInvoiceQuery = `
	INSERT INTO invoices (
		id, invoice_number, invoice_date, client_id, level_id, invoice_status,
		subtotal, tax_total, discount_total, total, paid, payment_transaction_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :invoice_number, :invoice_date, :client_id, :level_id, :invoice_status,
		:subtotal, :tax_total, :discount_total, :total, :paid, :payment_transaction_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

const insertInvoiceEntityQuery = `
	INSERT INTO invoice_entities (
		id, invoice_id, parent_entity_id, entity_type, entity_id, quantity,
		unit_price, discount_amount, tax_amount, total_amount,
		plan_template_id, contract_start,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :invoice_id, :parent_entity_id, :entity_type, :entity_id, :quantity,
		:unit_price, :discount_amount, :tax_amount, :total_amount,
		:plan_template_id, :contract_start,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

const insertEntityTaxQuery = `
	INSERT INTO invoice_entity_taxes (
		id, invoice_entity_id, tax_group_id, tax_rate_id, rate, amount,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :invoice_entity_id, :tax_group_id, :tax_rate_id, :rate, :amount,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

const insertEntityDiscountQuery = `
	INSERT INTO invoice_entity_discounts (
		id, invoice_entity_id, discount_id, adjustment_id, calculation_type, rate, amount,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :invoice_entity_id, :discount_id, :adjustment_id, :calculation_type, :rate, :amount,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *invoiceRepository) Create(ctx context.Context, inv *domainInvoice.Invoice) error {
	q := r.db.GetQuerier(ctx)

	if _, err := q.NamedExec(insertInvoiceQuery, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}

	if len(inv.Entities) > 0 {
		if _, err := q.NamedExec(insertInvoiceEntityQuery, inv.Entities); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice entities").
				WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
				Mark(ierr.ErrDatabase)
		}
	}

	var taxes []*domainInvoice.EntityTax
	var discounts []*domainInvoice.EntityDiscount
	for _, e := range inv.Entities {
		taxes = append(taxes, e.Taxes...)
		discounts = append(discounts, e.Discounts...)
	}
	if len(taxes) > 0 {
		if _, err := q.NamedExec(insertEntityTaxQuery, taxes); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice entity taxes").
				WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
				Mark(ierr.ErrDatabase)
		}
	}
	if len(discounts) > 0 {
		if _, err := q.NamedExec(insertEntityDiscountQuery, discounts); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice entity discounts").
				WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
				Mark(ierr.ErrDatabase)
		}
	}

	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*domainInvoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)

	var inv domainInvoice.Invoice
	err := q.GetContext(ctx, &inv, `SELECT * FROM invoices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	err = q.SelectContext(ctx, &inv.Entities,
		`SELECT * FROM invoice_entities WHERE invoice_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice entities").
			Mark(ierr.ErrDatabase)
	}
	if len(inv.Entities) == 0 {
		return &inv, nil
	}

	entityIDs := make([]string, 0, len(inv.Entities))
	byID := make(map[string]*domainInvoice.InvoiceEntity, len(inv.Entities))
	for _, e := range inv.Entities {
		entityIDs = append(entityIDs, e.ID)
		byID[e.ID] = e
	}

	var taxes []*domainInvoice.EntityTax
	err = q.SelectContext(ctx, &taxes,
		`SELECT * FROM invoice_entity_taxes WHERE invoice_entity_id = ANY($1) ORDER BY created_at, id`,
		pq.Array(entityIDs))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice entity taxes").
			Mark(ierr.ErrDatabase)
	}
	for _, t := range taxes {
		if e, ok := byID[t.InvoiceEntityID]; ok {
			e.Taxes = append(e.Taxes, t)
		}
	}

	var entityDiscounts []*domainInvoice.EntityDiscount
	err = q.SelectContext(ctx, &entityDiscounts,
		`SELECT * FROM invoice_entity_discounts WHERE invoice_entity_id = ANY($1) ORDER BY created_at, id`,
		pq.Array(entityIDs))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice entity discounts").
			Mark(ierr.ErrDatabase)
	}
	for _, d := range entityDiscounts {
		if e, ok := byID[d.InvoiceEntityID]; ok {
			e.Discounts = append(e.Discounts, d)
		}
	}

	return &inv, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, inv *domainInvoice.Invoice) error {
	q := r.db.GetQuerier(ctx)

	result, err := q.ExecContext(ctx, `
		UPDATE invoices
		SET invoice_status = $1, paid = $2, payment_transaction_id = $3,
		    updated_at = $4, updated_by = $5
		WHERE id = $6`,
		inv.InvoiceStatus, inv.Paid, inv.PaymentTransactionID,
		inv.UpdatedAt, inv.UpdatedBy, inv.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
