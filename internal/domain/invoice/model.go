package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/types"
)

// Invoice represents the invoice header. Totals are fixed at creation time;
// only status transitions mutate the row afterwards.
type Invoice struct {
	ID                   string              `db:"id" json:"id"`
	InvoiceNumber        string              `db:"invoice_number" json:"invoice_number"`
	InvoiceDate          time.Time           `db:"invoice_date" json:"invoice_date"`
	ClientID             string              `db:"client_id" json:"client_id"`
	LevelID              string              `db:"level_id" json:"level_id"`
	InvoiceStatus        types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	Subtotal             decimal.Decimal     `db:"subtotal" json:"subtotal"`
	TaxTotal             decimal.Decimal     `db:"tax_total" json:"tax_total"`
	DiscountTotal        decimal.Decimal     `db:"discount_total" json:"discount_total"`
	Total                decimal.Decimal     `db:"total" json:"total"`
	Paid                 bool                `db:"paid" json:"paid"`
	PaymentTransactionID *string             `db:"payment_transaction_id" json:"payment_transaction_id,omitempty"`
	Entities             []*InvoiceEntity    `db:"-" json:"entities,omitempty"`
	types.BaseModel
}

// InvoiceEntity is one row of the invoice line-item tree. Agreements and
// bundles are containers whose amounts are rolled up from their children;
// items are the priced leaves.
type InvoiceEntity struct {
	ID             string                  `db:"id" json:"id"`
	InvoiceID      string                  `db:"invoice_id" json:"invoice_id"`
	ParentEntityID *string                 `db:"parent_entity_id" json:"parent_entity_id,omitempty"`
	EntityType     types.InvoiceEntityType `db:"entity_type" json:"entity_type"`
	EntityID       string                  `db:"entity_id" json:"entity_id"`
	Quantity       decimal.Decimal         `db:"quantity" json:"quantity"`
	UnitPrice      decimal.Decimal         `db:"unit_price" json:"unit_price"`
	DiscountAmount decimal.Decimal         `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal         `db:"tax_amount" json:"tax_amount"`
	TotalAmount    decimal.Decimal         `db:"total_amount" json:"total_amount"`
	PlanTemplateID *string                 `db:"plan_template_id" json:"plan_template_id,omitempty"`
	ContractStart  *time.Time              `db:"contract_start" json:"contract_start,omitempty"`
	Taxes          []*EntityTax            `db:"-" json:"taxes,omitempty"`
	Discounts      []*EntityDiscount       `db:"-" json:"discounts,omitempty"`
	types.BaseModel
}

// EntityTax is one applied tax-rate allocation on a leaf entity, kept with
// the resolved rate and source identifiers for audit.
type EntityTax struct {
	ID              string          `db:"id" json:"id"`
	InvoiceEntityID string          `db:"invoice_entity_id" json:"invoice_entity_id"`
	TaxGroupID      string          `db:"tax_group_id" json:"tax_group_id"`
	TaxRateID       string          `db:"tax_rate_id" json:"tax_rate_id"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	types.BaseModel
}

// EntityDiscount is one applied discount on a leaf entity.
type EntityDiscount struct {
	ID              string                        `db:"id" json:"id"`
	InvoiceEntityID string                        `db:"invoice_entity_id" json:"invoice_entity_id"`
	DiscountID      string                        `db:"discount_id" json:"discount_id"`
	AdjustmentID    string                        `db:"adjustment_id" json:"adjustment_id"`
	CalculationType types.DiscountCalculationType `db:"calculation_type" json:"calculation_type"`
	Rate            decimal.Decimal               `db:"rate" json:"rate"`
	Amount          decimal.Decimal               `db:"amount" json:"amount"`
	types.BaseModel
}

// GrossAmount is the pre-tax, pre-discount amount of a leaf line.
func (e *InvoiceEntity) GrossAmount() decimal.Decimal {
	return types.RoundCurrency(e.UnitPrice.Mul(e.Quantity))
}

// Finalize computes the entity total from its parts:
// total = round2(unitPrice * quantity) + tax - discount.
func (e *InvoiceEntity) Finalize() {
	e.TotalAmount = e.GrossAmount().Add(e.TaxAmount).Sub(e.DiscountAmount)
}

// Validate checks the structural invariants of an entity row.
func (e *InvoiceEntity) Validate() error {
	if err := e.EntityType.Validate(); err != nil {
		return err
	}

	if e.Quantity.IsNegative() {
		return ierr.NewError("invoice entity validation failed").
			WithHint("quantity must be non negative").
			Mark(ierr.ErrValidation)
	}

	if e.EntityType == types.InvoiceEntityTypeItem && e.Quantity.IsZero() {
		return ierr.NewError("invoice entity validation failed").
			WithHint("item quantity must be positive").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Validate checks the invoice header invariants. The total must reconcile
// with subtotal + tax - discount to the cent.
func (i *Invoice) Validate() error {
	if i.Subtotal.IsNegative() || i.TaxTotal.IsNegative() || i.DiscountTotal.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("amounts must be non negative").
			Mark(ierr.ErrValidation)
	}

	expected := i.Subtotal.Add(i.TaxTotal).Sub(i.DiscountTotal)
	if !i.Total.Sub(expected).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)) {
		return ierr.NewError("invoice validation failed").
			WithHint("total must equal subtotal + tax - discount").
			WithReportableDetails(map[string]any{
				"total":    i.Total,
				"expected": expected,
			}).
			Mark(ierr.ErrValidation)
	}

	for _, e := range i.Entities {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// LeafTotalsMatch reports whether the sum of leaf line totals reconciles with
// the header total within the given tolerance. Containers are excluded so
// rolled-up amounts are not double counted.
func (i *Invoice) LeafTotalsMatch(tolerance decimal.Decimal) bool {
	sum := decimal.Zero
	for _, e := range i.Entities {
		if e.EntityType.IsContainer() {
			continue
		}
		sum = sum.Add(e.TotalAmount)
	}
	return sum.Sub(i.Total).Abs().LessThanOrEqual(tolerance)
}
