package shell

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// Logger interface for basic logging in handlers.
type Logger = catalogstore.Logger

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = catalogstore.ContextualLogger

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = catalogstore.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = catalogstore.ContextualMetricsCollector

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandResult is implemented by every command result. Results embed HandlerResult.
type CommandResult interface {
	Metadata() HandlerResult
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Implementations focus on the Load -> Decide -> Apply workflow and leave observability to wrappers.
type CoreCommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that read from the catalog without changing it.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
