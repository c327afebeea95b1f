package swapbook

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result is the outcome of a SwapBook command: the copy counts of both books after the exchange.
type Result struct {
	shell.HandlerResult
	ReturnedBookCopies int
	BorrowedBookCopies int
}

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
// It handles the workflow: Load (with row locks) -> Decide -> Apply, in one transaction.
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
	var swapped core.BookSwapped

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		swapped, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{
		HandlerResult:      shell.NewSuccessResult(retryMetrics),
		ReturnedBookCopies: swapped.Returned.RemainingCopies,
		BorrowedBookCopies: swapped.Borrowed.RemainingCopies,
	}, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.BookSwapped, error) {
	var swapped core.BookSwapped

	err := h.store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		borrower, err := shell.LoadBorrower(ctx, tx, command.BorrowerID)
		if err != nil {
			return err
		}

		books, err := shell.LoadBooks(ctx, tx, command.ReturnISBN, command.BorrowISBN)
		if err != nil {
			return err
		}

		result := Decide(
			State{Borrower: borrower, ReturnBook: books[command.ReturnISBN], BorrowBook: books[command.BorrowISBN]},
			command,
		)

		if !result.HasEventToApply() {
			return result.HasError()
		}

		swapped, _ = result.Event.(core.BookSwapped)

		return shell.ApplyEvent(ctx, tx, result.Event)
	})

	return swapped, err
}
