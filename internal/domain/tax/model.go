package tax

import (
	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/types"
)

// TaxGroup is a named group of tax-rate allocations an item can belong to.
type TaxGroup struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	types.BaseModel
}

// RateAllocation is one tax rate within a group at a given level. A group
// usually carries one allocation but composite taxes carry several.
type RateAllocation struct {
	ID         string          `db:"id" json:"id"`
	TaxGroupID string          `db:"tax_group_id" json:"tax_group_id"`
	TaxRateID  string          `db:"tax_rate_id" json:"tax_rate_id"`
	LevelID    string          `db:"level_id" json:"level_id"`
	Rate       decimal.Decimal `db:"rate" json:"rate"`
	types.BaseModel
}

// TaxLine is one resolved tax amount for an invoice line.
type TaxLine struct {
	TaxGroupID string          `json:"tax_group_id"`
	TaxRateID  string          `json:"tax_rate_id"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
}

// TotalAmount sums the amounts of the given tax lines.
func TotalAmount(lines []*TaxLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
