package addbook

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// Result is the outcome of an AddBook command.
type Result struct {
	shell.HandlerResult
	ISBN string
}

// CommandHandler validates a new book and inserts it in one transaction.
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

// Handle validates the command and stores the book.
//
// Returns core.ErrInvalidBook or core.ErrUnknownLabel for invalid input,
// and catalogstore.ErrDuplicateKey if a book with the same ISBN exists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	book, err := buildBook(command)
	if err != nil {
		return Result{}, err
	}

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.RunInTransaction(retryCtx, func(ctx context.Context, tx catalogstore.Tx) error {
			return tx.InsertBook(ctx, shell.RecordFromBook(book))
		})
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), ISBN: book.ISBN}, nil
}

func buildBook(command Command) (core.Book, error) {
	label := core.LabelGeneral

	if command.Label != "" {
		var err error
		if label, err = core.ParseLabel(command.Label); err != nil {
			return core.Book{}, err
		}
	}

	return core.BuildBook(command.ISBN, command.Title, command.Author, command.Year, command.Copies, label)
}
