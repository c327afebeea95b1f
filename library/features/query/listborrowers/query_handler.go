package listborrowers

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// QueryHandler reads all borrowers in one read-only transaction.
type QueryHandler struct {
	store catalogstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store catalogstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Result, error) {
	var students, pupils []catalogstore.BorrowerRecord

	err := h.store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var listErr error

		if students, listErr = tx.ListBorrowers(ctx, catalogstore.KindStudent); listErr != nil {
			return listErr
		}

		pupils, listErr = tx.ListBorrowers(ctx, catalogstore.KindPupil)

		return listErr
	})
	if err != nil {
		return Result{}, err
	}

	return ProjectBorrowers(students, pupils)
}
