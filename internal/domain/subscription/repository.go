package subscription

import "context"

// Repository defines persistence for subscription instances and their
// billing schedule rows.
type Repository interface {
	// CreateInstance inserts a new subscription instance
	CreateInstance(ctx context.Context, instance *Instance) error

	// GetInstance retrieves an instance by ID
	GetInstance(ctx context.Context, id string) (*Instance, error)

	// UpdateInstance persists cycle advancement and status transitions
	UpdateInstance(ctx context.Context, instance *Instance) error

	// CreateSchedule inserts a billing-schedule row
	CreateSchedule(ctx context.Context, row *ScheduleRow) error
}
