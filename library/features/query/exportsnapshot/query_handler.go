package exportsnapshot

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

// QueryHandler exports the catalog in one read-only transaction.
type QueryHandler struct {
	store catalogstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store catalogstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle reads the whole catalog and encodes it as a snapshot.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Result, error) {
	var books []catalogstore.BookRecord
	var students, pupils []catalogstore.BorrowerRecord

	err := h.store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var listErr error

		if books, listErr = tx.ListBooks(ctx); listErr != nil {
			return listErr
		}

		if students, listErr = tx.ListBorrowers(ctx, catalogstore.KindStudent); listErr != nil {
			return listErr
		}

		pupils, listErr = tx.ListBorrowers(ctx, catalogstore.KindPupil)

		return listErr
	})
	if err != nil {
		return Result{}, err
	}

	data, err := exchangeformat.EncodeSnapshot(exchangeformat.BuildSnapshot(books, students, pupils))
	if err != nil {
		return Result{}, err
	}

	return Result{
		Snapshot: data,
		Counts:   catalogstore.Counts{Books: len(books), Students: len(students), Pupils: len(pupils)},
	}, nil
}
