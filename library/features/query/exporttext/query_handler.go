package exporttext

import (
	"bytes"
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

// QueryHandler exports all books in one read-only transaction.
type QueryHandler struct {
	store catalogstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store catalogstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle reads all books and encodes them as text.
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

	books := make([]exchangeformat.TextBook, 0, len(records))
	for _, record := range records {
		books = append(books, exchangeformat.TextBook{Title: record.Title, Label: record.Label})
	}

	var buf bytes.Buffer
	if err = exchangeformat.EncodeText(&buf, books); err != nil {
		return Result{}, err
	}

	return Result{Text: buf.Bytes(), Count: len(books)}, nil
}
