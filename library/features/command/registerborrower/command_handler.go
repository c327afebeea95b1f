package registerborrower

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result is the outcome of a RegisterBorrower command.
type Result struct {
	shell.HandlerResult
	UserID   string
	Category core.Category
}

// CommandHandler validates a new borrower and inserts it in one transaction.
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

// Handle validates the command and stores the borrower without any held books.
//
// Returns core.ErrInvalidIdentifier, core.ErrCategoryMismatch, or core.ErrInvalidBorrower for invalid input,
// and catalogstore.ErrDuplicateKey if the identifier is already registered.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	borrower, err := buildBorrower(command)
	if err != nil {
		return Result{}, err
	}

	record := shell.RecordFromBorrower(borrower)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.RunInTransaction(retryCtx, func(ctx context.Context, tx catalogstore.Tx) error {
			return tx.InsertBorrower(ctx, record)
		})
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(retryMetrics),
		UserID:        borrower.ID(),
		Category:      borrower.Category(),
	}, nil
}

func buildBorrower(command Command) (core.Borrower, error) {
	switch command.Category {
	case core.CategoryStudent:
		return core.BuildStudent(command.UserID, command.Name, command.Surname, command.Group, nil)
	case core.CategoryPupil:
		return core.BuildPupil(command.UserID, command.Name, command.Surname, command.Group, command.Age, nil)
	default:
		return nil, core.ErrUnknownCategory
	}
}
