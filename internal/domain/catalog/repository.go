package catalog

import "context"

// Repository defines read access to billing reference data. Unknown ids are
// fatal lookup failures (ErrNotFound): pricing and scheduling cannot proceed
// without them.
type Repository interface {
	// GetEntityTypeName resolves an entity-type id to its name
	GetEntityTypeName(ctx context.Context, entityTypeID string) (string, error)

	// ResolveEntityAndLevel resolves the display names of a billable entity
	// and the level a purchase was made at
	ResolveEntityAndLevel(ctx context.Context, entityTypeID, entityID, levelID string) (entityName string, levelName string, err error)

	// GetFrequency resolves a frequency id
	GetFrequency(ctx context.Context, frequencyID string) (*Frequency, error)

	// GetBillingDayRule resolves a billing-day rule id to its raw rule text
	GetBillingDayRule(ctx context.Context, ruleID string) (*BillingDayRule, error)
}
