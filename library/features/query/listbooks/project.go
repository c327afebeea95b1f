package listbooks

import (
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
)

// ProjectBooks converts the stored books into the query result, keeping their order.
func ProjectBooks(records []catalogstore.BookRecord) (Result, error) {
	result := Result{Books: make([]core.Book, 0, len(records))}

	for _, record := range records {
		book, err := shell.BookFromRecord(record)
		if err != nil {
			return Result{}, err
		}

		result.Books = append(result.Books, book)
	}

	result.Count = len(result.Books)

	return result, nil
}
