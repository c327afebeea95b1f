package borrowedbooks

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// QueryHandler reads a borrower and its held books in one read-only transaction.
type QueryHandler struct {
	store catalogstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store catalogstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
// Returns core.ErrInvalidIdentifier for a malformed identifier and catalogstore.ErrBorrowerNotFound for an unknown one.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	var result Result

	err := h.store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		borrower, err := shell.LoadBorrower(ctx, tx, query.BorrowerID)
		if err != nil {
			return err
		}

		books, err := shell.LoadBooks(ctx, tx, borrower.HeldISBNs()...)
		if err != nil {
			return err
		}

		result = ProjectBorrowedBooks(borrower, books)

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
