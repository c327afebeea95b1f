package returnbook

import (
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// State is the part of the catalog the decision depends on.
type State struct {
	Borrower core.Borrower
	Book     core.Book
}

// Decide implements the business logic to determine whether a borrower can return a book.
//
// Business Rules:
//
//	GIVEN: A borrower and a book in the catalog
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event with the incremented copy count is generated
//	IDEMPOTENCY: ErrNotHeld if the borrower does not hold the book, no event generated
func Decide(s State, _ Command) core.DecisionResult {
	if !s.Borrower.Holds(s.Book.ISBN) {
		return core.IdempotentDecision(core.ErrNotHeld)
	}

	return core.SuccessDecision(
		core.BuildBookReturned(
			s.Borrower.Category(),
			s.Borrower.ID(),
			s.Book.ISBN,
			s.Book.Copies+1,
		),
	)
}
