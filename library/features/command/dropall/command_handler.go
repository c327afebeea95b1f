package dropall

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result holds the record counts from before the deletion.
type Result struct {
	shell.HandlerResult
	Counts catalogstore.Counts
}

// CommandHandler deletes the whole catalog in one transaction.
type CommandHandler struct {
	store        catalogstore.Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store catalogstore.Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle deletes everything. Nothing is deleted if the transaction fails.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (Result, error) {
	var counts catalogstore.Counts

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.RunInTransaction(retryCtx, func(ctx context.Context, tx catalogstore.Tx) error {
			var deleteErr error
			counts, deleteErr = tx.DeleteAll(ctx)

			return deleteErr
		})
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), Counts: counts}, nil
}
