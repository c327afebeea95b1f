package listbooks

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// QueryHandler reads all books in a read-only transaction.
// With catalogstore.WithEventualConsistency on the context, the read may be served by a replica.
type QueryHandler struct {
	store catalogstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store catalogstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Result, error) {
	var records []catalogstore.BookRecord

	err := h.store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var listErr error
		records, listErr = tx.ListBooks(ctx)

		return listErr
	})
	if err != nil {
		return Result{}, err
	}

	return ProjectBooks(records)
}
