package importtext

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

const (
	importedAuthor = "Unknown"
	importedYear   = 1
	importedCopies = 1

	// isbnLength fits the ISBN column.
	isbnLength = 20

	reasonMissingSeparator = "line has no title,label separator"
)

// Result counts the created books and the skipped lines.
type Result struct {
	shell.HandlerResult
	Created int
	Skipped int
}

// CommandHandler imports books from text, one transaction per book.
type CommandHandler struct {
	store            catalogstore.Store
	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger that reports skipped lines.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the contextual logger that reports skipped lines.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
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

// Handle creates one book per well-formed line.
// Lines that are malformed or hold an invalid book are skipped and counted.
// Books created before a storage failure stay in the catalog, and the partial Result is returned with the error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	books, malformed := exchangeformat.DecodeText(command.Data)

	result := Result{Skipped: len(malformed)}
	for _, line := range malformed {
		shell.LogRecordSkipped(
			ctx,
			h.logger,
			h.contextualLogger,
			commandType,
			"line "+strconv.Itoa(line.Number),
			reasonMissingSeparator,
		)
	}

	var totalMetrics shell.RetryMetrics

	for _, textBook := range books {
		recordName := "line " + strconv.Itoa(textBook.Line)

		record, err := buildRecord(textBook)
		if shell.ClassifyError(err) == shell.ClassInvalidInput {
			h.skip(ctx, recordName, err, &result)
			continue
		}

		if err != nil {
			result.HandlerResult = shell.NewErrorResult(totalMetrics)
			return result, err
		}

		retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
			return h.store.RunInTransaction(retryCtx, func(ctx context.Context, tx catalogstore.Tx) error {
				return tx.InsertBook(ctx, record)
			})
		}, h.retryOptions...)

		totalMetrics = shell.MergeRetryMetrics(totalMetrics, retryMetrics)

		if shell.ClassifyError(err) == shell.ClassInvalidInput {
			h.skip(ctx, recordName, err, &result)
			continue
		}

		if err != nil {
			result.HandlerResult = shell.NewErrorResult(totalMetrics)
			return result, err
		}

		result.Created++
	}

	result.HandlerResult = shell.NewSuccessResult(totalMetrics)

	return result, nil
}

func (h CommandHandler) skip(ctx context.Context, record string, err error, result *Result) {
	shell.LogRecordSkipped(ctx, h.logger, h.contextualLogger, commandType, record, err.Error())
	result.Skipped++
}

func buildRecord(textBook exchangeformat.TextBook) (catalogstore.BookRecord, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return catalogstore.BookRecord{}, err
	}

	isbn := strings.ReplaceAll(id.String(), "-", "")[:isbnLength]

	book, err := core.BuildBook(
		isbn,
		textBook.Title,
		importedAuthor,
		importedYear,
		importedCopies,
		core.LabelOrDefault(textBook.Label),
	)
	if err != nil {
		return catalogstore.BookRecord{}, err
	}

	return shell.RecordFromBook(book), nil
}
