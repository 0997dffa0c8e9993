package plan

import "context"

// Repository defines persistence for subscription plans and their child
// rows. Child inserts are batched; callers own the transaction boundary.
type Repository interface {
	// Create inserts the plan header
	Create(ctx context.Context, plan *Plan) error

	// Get retrieves a plan by ID including cycle prices and term
	Get(ctx context.Context, id string) (*Plan, error)

	// CreateCyclePrices batch-inserts cycle price bands
	CreateCyclePrices(ctx context.Context, bands []*CyclePriceBand) error

	// CreateDiscounts batch-inserts plan discount bindings
	CreateDiscounts(ctx context.Context, discounts []*PlanDiscount) error

	// CreateEntitlements batch-inserts plan entitlements
	CreateEntitlements(ctx context.Context, entitlements []*Entitlement) error

	// CreatePromos batch-inserts plan promos
	CreatePromos(ctx context.Context, promos []*Promo) error

	// CreateTerm inserts the plan term
	CreateTerm(ctx context.Context, term *Term) error
}
