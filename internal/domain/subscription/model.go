package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/types"
)

// Instance is one running occurrence of a subscription plan. It is created
// once per plan and advanced cycle by cycle; it is never deleted, only
// terminated via status.
type Instance struct {
	ID                 string                   `db:"id" json:"id"`
	PlanID             string                   `db:"plan_id" json:"plan_id"`
	ClientID           string                   `db:"client_id" json:"client_id"`
	ClientAgreementID  *string                  `db:"client_agreement_id" json:"client_agreement_id,omitempty"`
	StartDate          time.Time                `db:"start_date" json:"start_date"`
	EndDate            *time.Time               `db:"end_date" json:"end_date,omitempty"`
	NextBillingDate    *time.Time               `db:"next_billing_date" json:"next_billing_date,omitempty"`
	LastBilledDate     *time.Time               `db:"last_billed_date" json:"last_billed_date,omitempty"`
	CurrentCycle       int                      `db:"current_cycle" json:"current_cycle"`
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	types.BaseModel
}

// ScheduleRow records one planned billing occurrence and the invoice that
// was created for it.
type ScheduleRow struct {
	ID          string          `db:"id" json:"id"`
	InstanceID  string          `db:"instance_id" json:"instance_id"`
	CycleNumber int             `db:"cycle_number" json:"cycle_number"`
	BillingDate time.Time       `db:"billing_date" json:"billing_date"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	types.BaseModel
}

// StatusAt returns the lifecycle status an instance starting at startDate
// should carry at the given instant.
func StatusAt(startDate, at time.Time) types.SubscriptionStatus {
	if startDate.After(at) {
		return types.SubscriptionStatusFuture
	}
	return types.SubscriptionStatusActive
}
