package borrowedbooks

import (
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// ProjectBorrowedBooks builds the query result from a borrower and its loaded books.
//
// Query Logic:
//
//	GIVEN: A borrower and the books of its held set
//	WHEN: BorrowedBooks query is executed
//	THEN: The held books are returned in ascending ISBN order
func ProjectBorrowedBooks(borrower core.Borrower, books map[string]core.Book) Result {
	held := borrower.HeldISBNs()

	result := Result{
		BorrowerID: borrower.ID(),
		Category:   borrower.Category(),
		Books:      make([]core.Book, 0, len(held)),
	}

	for _, isbn := range held {
		result.Books = append(result.Books, books[isbn])
	}

	result.Count = len(result.Books)

	return result
}
