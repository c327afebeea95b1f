package importsnapshot

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

const (
	reasonUnmatchedHolding = "held book is not in the catalog"
)

// UpsertCounts counts the records of one group.
type UpsertCounts struct {
	Created int
	Updated int
	Failed  int
}

// Result holds per-group counts. UnmatchedHoldings counts held ISBNs that were skipped
// because no book with that ISBN exists after the book upserts.
type Result struct {
	shell.HandlerResult
	Books             UpsertCounts
	Students          UpsertCounts
	Pupils            UpsertCounts
	UnmatchedHoldings int
}

// CommandHandler imports a snapshot, one transaction per record.
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

// WithLogger sets the logger that reports skipped records.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the contextual logger that reports skipped records.
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

// Handle imports the snapshot.
//
// Returns exchangeformat.ErrMalformedSnapshot without touching the catalog if the snapshot cannot be read.
// Invalid records are skipped and counted as failed. On a storage failure the partial Result is returned with the error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	snapshot, err := exchangeformat.DecodeSnapshot(command.Data)
	if err != nil {
		return Result{}, err
	}

	run := importRun{handler: h}

	if command.WipeFirst {
		if err = run.retry(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
			_, deleteErr := tx.DeleteAll(ctx)
			return deleteErr
		}); err != nil {
			return run.failed(), err
		}
	}

	for _, book := range snapshot.Books {
		if err = run.importBook(ctx, book); err != nil {
			return run.failed(), err
		}
	}

	for _, student := range snapshot.Students {
		if err = run.importBorrower(ctx, catalogstore.KindStudent, student, 0, &run.result.Students); err != nil {
			return run.failed(), err
		}
	}

	for _, pupil := range snapshot.Pupils {
		if err = run.importBorrower(ctx, catalogstore.KindPupil, pupil.SnapshotBorrower, pupil.Age, &run.result.Pupils); err != nil {
			return run.failed(), err
		}
	}

	run.result.HandlerResult = shell.NewSuccessResult(run.metrics)

	return run.result, nil
}

// importRun accumulates the counts and retry metrics of one import.
type importRun struct {
	handler CommandHandler
	result  Result
	metrics shell.RetryMetrics
}

func (r *importRun) failed() Result {
	r.result.HandlerResult = shell.NewErrorResult(r.metrics)
	return r.result
}

func (r *importRun) retry(ctx context.Context, fn catalogstore.TxFunc) error {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return r.handler.store.RunInTransaction(retryCtx, fn)
	}, r.handler.retryOptions...)

	r.metrics = shell.MergeRetryMetrics(r.metrics, retryMetrics)

	return err
}

func (r *importRun) importBook(ctx context.Context, snapshotBook exchangeformat.SnapshotBook) error {
	record := snapshotBook.BookRecord()

	book, err := shell.BookFromRecord(record)
	if err != nil {
		r.skip(ctx, "book "+record.ISBN, err)
		r.result.Books.Failed++

		return nil
	}

	var outcome catalogstore.UpsertOutcome

	err = r.retry(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var upsertErr error
		outcome, upsertErr = tx.UpsertBook(ctx, shell.RecordFromBook(book))

		return upsertErr
	})

	if shell.ClassifyError(err) == shell.ClassInvalidInput {
		r.skip(ctx, "book "+record.ISBN, err)
		r.result.Books.Failed++

		return nil
	}

	if err != nil {
		return err
	}

	countOutcome(&r.result.Books, outcome)

	return nil
}

func (r *importRun) importBorrower(
	ctx context.Context,
	kind catalogstore.BorrowerKind,
	snapshotBorrower exchangeformat.SnapshotBorrower,
	age int,
	counts *UpsertCounts,
) error {

	recordName := string(kind) + " " + snapshotBorrower.UserID

	borrower, err := buildBorrower(kind, snapshotBorrower, age)
	if err != nil {
		r.skip(ctx, recordName, err)
		counts.Failed++

		return nil
	}

	record := shell.RecordFromBorrower(borrower)

	var outcome catalogstore.UpsertOutcome
	var unmatched []string

	err = r.retry(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		outcome, unmatched = 0, nil

		var txErr error
		if outcome, txErr = tx.UpsertBorrower(ctx, record); txErr != nil {
			return txErr
		}

		if _, txErr = tx.ClearHoldings(ctx, kind, record.UserID); txErr != nil {
			return txErr
		}

		for _, isbn := range record.BorrowedISBNs {
			txErr = tx.AddHolding(ctx, kind, record.UserID, isbn)

			switch {
			case errors.Is(txErr, catalogstore.ErrBookNotFound):
				unmatched = append(unmatched, isbn)
			case txErr != nil:
				return txErr
			}
		}

		return nil
	})

	if shell.ClassifyError(err) == shell.ClassInvalidInput {
		r.skip(ctx, recordName, err)
		counts.Failed++

		return nil
	}

	if err != nil {
		return err
	}

	countOutcome(counts, outcome)

	for _, isbn := range unmatched {
		shell.LogRecordSkipped(
			ctx,
			r.handler.logger,
			r.handler.contextualLogger,
			commandType,
			recordName+" holding "+isbn,
			reasonUnmatchedHolding,
		)
	}

	r.result.UnmatchedHoldings += len(unmatched)

	return nil
}

func (r *importRun) skip(ctx context.Context, record string, err error) {
	shell.LogRecordSkipped(ctx, r.handler.logger, r.handler.contextualLogger, commandType, record, err.Error())
}

func buildBorrower(
	kind catalogstore.BorrowerKind,
	b exchangeformat.SnapshotBorrower,
	age int,
) (core.Borrower, error) {

	switch kind {
	case catalogstore.KindStudent:
		return core.BuildStudent(b.UserID, b.Name, b.Surname, b.Group, b.Borrowed)
	case catalogstore.KindPupil:
		return core.BuildPupil(b.UserID, b.Name, b.Surname, b.Group, age, b.Borrowed)
	default:
		return nil, catalogstore.ErrUnknownBorrowerKind
	}
}

func countOutcome(counts *UpsertCounts, outcome catalogstore.UpsertOutcome) {
	switch outcome {
	case catalogstore.Created:
		counts.Created++
	case catalogstore.Updated:
		counts.Updated++
	}
}
