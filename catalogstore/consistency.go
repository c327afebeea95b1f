package catalogstore

import "context"

// ConsistencyLevel defines the consistency requirements for read-only catalog views.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database.
	// This is the default, and transactions opened with RunInTransaction always use the primary.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows View to read from a replica database, trading consistency
	// for a reduced load on the primary database. Suitable for listings and exports
	// that can tolerate slightly stale data.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "catalogstore.consistency_level"

// WithStrongConsistency returns a context that signals read-only views should use the primary database.
//
// Example usage:
//
//	ctx = catalogstore.WithStrongConsistency(ctx)
//	err := store.View(ctx, listBooks)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals read-only views may use a replica database.
//
// Example usage:
//
//	ctx = catalogstore.WithEventualConsistency(ctx)
//	err := store.View(ctx, listBooks)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
