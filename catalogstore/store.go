package catalogstore

import "context"

// TxFunc is the unit of work executed by Store.RunInTransaction and Store.View.
// Returning an error rolls the transaction back, and the error is handed back to the caller unchanged.
type TxFunc func(ctx context.Context, tx Tx) error

// Store is implemented by every catalog engine.
type Store interface {
	// RunInTransaction executes fn in a read-write transaction on the primary database.
	// FindBook and FindBorrower lock the returned rows until the transaction ends.
	RunInTransaction(ctx context.Context, fn TxFunc) error

	// View executes fn in a read-only transaction. Writes fail with ErrReadOnlyTransaction.
	View(ctx context.Context, fn TxFunc) error
}

// Tx reads and writes the catalog within one transaction.
//
// Books are addressed by ISBN and borrowers by (kind, user id). Engines never expose surrogate keys.
type Tx interface {
	FindBook(ctx context.Context, isbn string) (BookRecord, error)
	FindBorrower(ctx context.Context, kind BorrowerKind, userID string) (BorrowerRecord, error)
	ListBooks(ctx context.Context) ([]BookRecord, error)
	ListBorrowers(ctx context.Context, kind BorrowerKind) ([]BorrowerRecord, error)
	CountAll(ctx context.Context) (Counts, error)

	InsertBook(ctx context.Context, book BookRecord) error
	UpsertBook(ctx context.Context, book BookRecord) (UpsertOutcome, error)
	UpdateBookCopies(ctx context.Context, isbn string, copies int) error

	InsertBorrower(ctx context.Context, borrower BorrowerRecord) error
	UpsertBorrower(ctx context.Context, borrower BorrowerRecord) (UpsertOutcome, error)

	AddHolding(ctx context.Context, kind BorrowerKind, userID string, isbn string) error
	RemoveHolding(ctx context.Context, kind BorrowerKind, userID string, isbn string) error
	ClearHoldings(ctx context.Context, kind BorrowerKind, userID string) (int, error)

	// DeleteAll removes every book, borrower, and holding and returns the counts from before the deletion.
	DeleteAll(ctx context.Context) (Counts, error)
}
