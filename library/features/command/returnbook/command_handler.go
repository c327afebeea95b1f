package returnbook

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result is the outcome of a ReturnBook command.
// RemainingCopies is the copy count of the book after the command.
type Result struct {
	shell.HandlerResult
	RemainingCopies int
}

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
// It handles the workflow: Load (with row locks) -> Decide -> Apply, in one transaction.
// External wrappers handle all observability concerns.
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

// Handle executes the command, retrying on concurrency conflicts with exponential backoff.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var outcome executionOutcome

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		outcome, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if outcome.idempotent {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), RemainingCopies: outcome.copies}, err
	}

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), RemainingCopies: outcome.copies}, nil
}

type executionOutcome struct {
	copies     int
	idempotent bool
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (executionOutcome, error) {
	var outcome executionOutcome

	err := h.store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		borrower, err := shell.LoadBorrower(ctx, tx, command.BorrowerID)
		if err != nil {
			return err
		}

		books, err := shell.LoadBooks(ctx, tx, command.ISBN)
		if err != nil {
			return err
		}

		book := books[command.ISBN]
		result := Decide(State{Borrower: borrower, Book: book}, command)

		if !result.HasEventToApply() {
			outcome = executionOutcome{copies: book.Copies, idempotent: result.IsIdempotent()}
			return result.HasError()
		}

		outcome = executionOutcome{copies: book.Copies + 1}

		return shell.ApplyEvent(ctx, tx, result.Event)
	})

	return outcome, err
}
