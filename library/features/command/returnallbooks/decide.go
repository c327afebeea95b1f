package returnallbooks

import (
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// State is the borrower and every book in its held set, keyed by ISBN.
type State struct {
	Borrower core.Borrower
	Books    map[string]core.Book
}

// Decide implements the business logic for returning all held books at once.
//
// Business Rules:
//
//	GIVEN: A borrower and the books it holds
//	WHEN: ReturnAllBooks command is received
//	THEN: AllBooksReturned event with one BookReturned per held book is generated, in ascending ISBN order
//	IDEMPOTENT: No event if the borrower holds nothing
func Decide(s State, _ Command) core.DecisionResult {
	held := s.Borrower.HeldISBNs()
	if len(held) == 0 {
		return core.IdempotentDecision(nil)
	}

	category, borrowerID := s.Borrower.Category(), s.Borrower.ID()
	returns := make([]core.BookReturned, 0, len(held))

	for _, isbn := range held {
		returns = append(returns, core.BuildBookReturned(category, borrowerID, isbn, s.Books[isbn].Copies+1))
	}

	return core.SuccessDecision(core.BuildAllBooksReturned(category, borrowerID, returns))
}
