package payment

import (
	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/types"
)

// Transaction records one payment captured against an invoice. The row
// doubles as the idempotency guard for invoice finalization: an existing
// transaction for an invoice short-circuits a repeated finalize.
type Transaction struct {
	ID                   string          `db:"id" json:"id"`
	InvoiceID            string          `db:"invoice_id" json:"invoice_id"`
	ClientID             string          `db:"client_id" json:"client_id"`
	Amount               decimal.Decimal `db:"amount" json:"amount"`
	GatewayCode          string          `db:"gateway_code" json:"gateway_code"`
	MethodCode           string          `db:"method_code" json:"method_code"`
	GatewayTransactionID string          `db:"gateway_transaction_id" json:"gateway_transaction_id"`
	types.BaseModel
}
