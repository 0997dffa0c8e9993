package tax

import "context"

// Repository defines read access to tax reference data. All lookups are pure
// reads; a missing group or empty allocation set is reported as ErrNotFound
// or an empty slice and resolved to zero tax by the caller.
type Repository interface {
	// GetLevelTaxGroupID returns the tax group bound to the item's
	// level-scoped price row, ErrNotFound if the item has no price row at
	// that level or the row carries no group.
	GetLevelTaxGroupID(ctx context.Context, itemID, levelID string) (string, error)

	// GetDefaultTaxGroupID returns the item's default tax group,
	// ErrNotFound if the item has none.
	GetDefaultTaxGroupID(ctx context.Context, itemID string) (string, error)

	// ListAllocations returns the rate allocations of a group at a level.
	ListAllocations(ctx context.Context, taxGroupID, levelID string) ([]*RateAllocation, error)
}
