package catalog

import (
	"github.com/memberly/memberly/internal/types"
)

// EntityType is a reference row naming a billable entity kind.
type EntityType struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	types.BaseModel
}

// Level is a club location.
type Level struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	types.BaseModel
}

// Frequency is a reference row mapping a frequency id to a billing period.
type Frequency struct {
	ID     string              `db:"id" json:"id"`
	Name   string              `db:"name" json:"name"`
	Period types.BillingPeriod `db:"period" json:"period"`
	types.BaseModel
}

// BillingDayRule is the raw reference-data form of a billing day rule; the
// text is parsed by types.ParseBillingDayRule at scheduling time.
type BillingDayRule struct {
	ID   string `db:"id" json:"id"`
	Rule string `db:"rule" json:"rule"`
	types.BaseModel
}
