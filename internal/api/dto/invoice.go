package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/domain/invoice"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/validator"
)

// CreatePurchaseRequest is a purchase to be priced into an invoice. The
// purchased entities form a tree: agreements contain bundles, bundles
// contain items; standalone bundles and items are allowed.
type CreatePurchaseRequest struct {
	ClientID   string              `json:"client_id" validate:"required"`
	LevelID    string              `json:"level_id" validate:"required"`
	Agreements []PurchaseAgreement `json:"agreements,omitempty"`
	Bundles    []PurchaseBundle    `json:"bundles,omitempty"`
	Items      []PurchaseItem      `json:"items,omitempty"`
}

// PurchaseAgreement is the root of a purchase subtree.
type PurchaseAgreement struct {
	AgreementID  string           `json:"agreement_id" validate:"required"`
	EntityTypeID string           `json:"entity_type_id" validate:"required"`
	Bundles      []PurchaseBundle `json:"bundles,omitempty"`
}

// PurchaseBundle groups purchased items under one container line.
type PurchaseBundle struct {
	BundleID     string         `json:"bundle_id" validate:"required"`
	EntityTypeID string         `json:"entity_type_id" validate:"required"`
	Items        []PurchaseItem `json:"items,omitempty"`
}

// PurchaseItem is a priced leaf. When PlanTemplateID is set the unit price
// is resolved from the plan's first cycle-price band (with proration when
// the plan calls for it); otherwise UnitPrice is charged as a flat price.
type PurchaseItem struct {
	ItemID         string          `json:"item_id" validate:"required"`
	EntityTypeID   string          `json:"entity_type_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PlanTemplateID *string         `json:"plan_template_id,omitempty"`
	ContractStart  *time.Time      `json:"contract_start,omitempty"`
	DiscountIDs    []string        `json:"discount_ids,omitempty"`
}

func (r *CreatePurchaseRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(r.Agreements) == 0 && len(r.Bundles) == 0 && len(r.Items) == 0 {
		return ierr.NewError("purchase request is empty").
			WithHint("At least one agreement, bundle or item is required").
			Mark(ierr.ErrValidation)
	}

	for i := range r.Agreements {
		if err := r.Agreements[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Bundles {
		if err := r.Bundles[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (a *PurchaseAgreement) Validate() error {
	if err := validator.ValidateRequest(a); err != nil {
		return err
	}
	for i := range a.Bundles {
		if err := a.Bundles[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (b *PurchaseBundle) Validate() error {
	if err := validator.ValidateRequest(b); err != nil {
		return err
	}
	for i := range b.Items {
		if err := b.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i *PurchaseItem) Validate() error {
	if err := validator.ValidateRequest(i); err != nil {
		return err
	}
	if i.Quantity.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("item quantity must be positive").
			WithHint("Item quantity must be positive").
			WithReportableDetails(map[string]any{
				"item_id":  i.ItemID,
				"quantity": i.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return ierr.NewError("item unit price must be non negative").
			WithHint("Item unit price must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceResponse wraps the priced invoice.
type InvoiceResponse struct {
	*invoice.Invoice
}

// FinalizeInvoiceRequest carries the payment routing for finalization.
type FinalizeInvoiceRequest struct {
	GatewayCode string `json:"gateway_code" validate:"required"`
	MethodCode  string `json:"method_code" validate:"required"`
}

func (r *FinalizeInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// PaymentResponse reports the transaction an invoice was finalized with.
// AlreadyFinalized is true when the idempotency check short-circuited a
// repeated finalize.
type PaymentResponse struct {
	TransactionID        string          `json:"transaction_id"`
	GatewayTransactionID string          `json:"gateway_transaction_id"`
	Amount               decimal.Decimal `json:"amount"`
	AlreadyFinalized     bool            `json:"already_finalized"`
}
