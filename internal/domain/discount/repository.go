package discount

import (
	"context"
	"time"
)

// Repository defines read access to discount reference data.
type Repository interface {
	// ListEligible returns the discounts among candidateIDs that are active
	// at asOf and bound to either the given item/level or to any item/level.
	// Order is unspecified; selection priority is applied by the caller.
	ListEligible(ctx context.Context, itemID, levelID string, candidateIDs []string, asOf time.Time) ([]*Discount, error)
}
