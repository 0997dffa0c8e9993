package plan

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/types"
)

// Plan is a subscription plan template: the frequency, interval and
// billing-day rule that drive the cycle scheduler, plus the item it bills.
type Plan struct {
	ID                string                  `db:"id" json:"id"`
	Name              string                  `db:"name" json:"name"`
	ItemID            string                  `db:"item_id" json:"item_id"`
	FrequencyID       string                  `db:"frequency_id" json:"frequency_id"`
	IntervalCount     int                     `db:"interval_count" json:"interval_count"`
	BillingDayRuleID  string                  `db:"billing_day_rule_id" json:"billing_day_rule_id"`
	PaymentMethodID   string                  `db:"payment_method_id" json:"payment_method_id"`
	ProrationStrategy types.ProrationStrategy `db:"proration_strategy" json:"proration_strategy"`
	CyclePrices       []*CyclePriceBand       `db:"-" json:"cycle_prices,omitempty"`
	Discounts         []*PlanDiscount         `db:"-" json:"discounts,omitempty"`
	Entitlements      []*Entitlement          `db:"-" json:"entitlements,omitempty"`
	Promos            []*Promo                `db:"-" json:"promos,omitempty"`
	Term              *Term                   `db:"-" json:"term,omitempty"`
	types.BaseModel
}

// CyclePriceBand is a price valid over an inclusive cycle-number range
// [CycleStart, CycleEnd]. A nil CycleEnd means the band is open-ended. An
// optional window-override price takes precedence over the band price.
type CyclePriceBand struct {
	ID               string           `db:"id" json:"id"`
	PlanID           string           `db:"plan_id" json:"plan_id"`
	CycleStart       int              `db:"cycle_start" json:"cycle_start"`
	CycleEnd         *int             `db:"cycle_end" json:"cycle_end,omitempty"`
	Price            decimal.Decimal  `db:"price" json:"price"`
	OverridePrice    *decimal.Decimal `db:"override_price" json:"override_price,omitempty"`
	DownPaymentUnits int              `db:"down_payment_units" json:"down_payment_units"`
	types.BaseModel
}

// PlanDiscount binds a discount code to the plan's cycles.
type PlanDiscount struct {
	ID         string `db:"id" json:"id"`
	PlanID     string `db:"plan_id" json:"plan_id"`
	DiscountID string `db:"discount_id" json:"discount_id"`
	types.BaseModel
}

// Entitlement is a quantity of the plan's item included per cycle.
type Entitlement struct {
	ID       string          `db:"id" json:"id"`
	PlanID   string          `db:"plan_id" json:"plan_id"`
	ItemID   string          `db:"item_id" json:"item_id"`
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	types.BaseModel
}

// Promo is a fixed promotional amount deducted from a cycle charge.
type Promo struct {
	ID          string          `db:"id" json:"id"`
	PlanID      string          `db:"plan_id" json:"plan_id"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	types.BaseModel
}

// Term is the contract window of the plan.
type Term struct {
	ID        string     `db:"id" json:"id"`
	PlanID    string     `db:"plan_id" json:"plan_id"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	types.BaseModel
}

// Contains reports whether the band covers the given cycle number.
func (b *CyclePriceBand) Contains(cycle int) bool {
	if cycle < b.CycleStart {
		return false
	}
	if b.CycleEnd != nil && cycle > *b.CycleEnd {
		return false
	}
	return true
}

// EffectivePrice returns the window-override price when present, otherwise
// the band price.
func (b *CyclePriceBand) EffectivePrice() decimal.Decimal {
	if b.OverridePrice != nil {
		return *b.OverridePrice
	}
	return b.Price
}

// ResolveBand picks the band containing the target cycle, preferring the
// most specific match (highest cycle start). Returns nil when no band
// covers the cycle.
func ResolveBand(bands []*CyclePriceBand, cycle int) *CyclePriceBand {
	var matches []*CyclePriceBand
	for _, b := range bands {
		if b.Contains(cycle) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CycleStart > matches[j].CycleStart
	})
	return matches[0]
}
