package returnallbooks

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result is the outcome of a ReturnAllBooks command.
// ISBNs lists the returned books in ascending order.
type Result struct {
	shell.HandlerResult
	Returned int
	ISBNs    []string
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
// A borrower without held books is not an error: the result reports zero returned books.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var returned []string

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		returned, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	if len(returned) == 0 {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), ISBNs: []string{}}, nil
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(retryMetrics),
		Returned:      len(returned),
		ISBNs:         returned,
	}, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) ([]string, error) {
	var returned []string

	err := h.store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		returned = nil

		borrower, err := shell.LoadBorrower(ctx, tx, command.BorrowerID)
		if err != nil {
			return err
		}

		books, err := shell.LoadBooks(ctx, tx, borrower.HeldISBNs()...)
		if err != nil {
			return err
		}

		result := Decide(State{Borrower: borrower, Books: books}, command)

		if !result.HasEventToApply() {
			return result.HasError()
		}

		event, _ := result.Event.(core.AllBooksReturned)
		for _, r := range event.Returns {
			returned = append(returned, r.ISBN)
		}

		return shell.ApplyEvent(ctx, tx, result.Event)
	})

	return returned, err
}
