package types

import (
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the business status of an invoice. Invoices are never
// re-priced after creation; they only move through status transitions.
type InvoiceStatus string

const (
	InvoiceStatusPendingPayment InvoiceStatus = "PENDING_PAYMENT"
	InvoiceStatusPaid           InvoiceStatus = "PAID"
	InvoiceStatusVoided         InvoiceStatus = "VOID"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowedValues := []InvoiceStatus{
		InvoiceStatusPendingPayment,
		InvoiceStatusPaid,
		InvoiceStatusVoided,
	}

	if !lo.Contains(allowedValues, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invalid invoice status").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// InvoiceEntityType discriminates the rows of the invoice line-item tree.
// Agreements contain bundles, bundles contain items; items are the only
// priced leaves.
type InvoiceEntityType string

const (
	InvoiceEntityTypeAgreement InvoiceEntityType = "AGREEMENT"
	InvoiceEntityTypeBundle    InvoiceEntityType = "BUNDLE"
	InvoiceEntityTypeItem      InvoiceEntityType = "ITEM"
)

func (t InvoiceEntityType) String() string {
	return string(t)
}

func (t InvoiceEntityType) Validate() error {
	allowedValues := []InvoiceEntityType{
		InvoiceEntityTypeAgreement,
		InvoiceEntityTypeBundle,
		InvoiceEntityTypeItem,
	}

	if !lo.Contains(allowedValues, t) {
		return ierr.NewError("invalid invoice entity type").
			WithHint("Invalid invoice entity type").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": t,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// IsContainer reports whether the entity type holds child rows rather than
// carrying a price of its own.
func (t InvoiceEntityType) IsContainer() bool {
	return t == InvoiceEntityTypeAgreement || t == InvoiceEntityTypeBundle
}
