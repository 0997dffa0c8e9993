package types

// Status is a type for the lifecycle status of a persisted resource.
// It tracks whether a row should be included in queries, not business state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)
