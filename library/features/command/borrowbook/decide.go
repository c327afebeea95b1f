package borrowbook

import (
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// State is the part of the catalog the decision depends on.
type State struct {
	Borrower core.Borrower
	Book     core.Book
}

// Decide implements the business logic to determine whether a copy of a book may be lent to a borrower.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A registered borrower and a book in the catalog
//	WHEN: BorrowBook command is received
//	THEN: BookBorrowed event with the decremented copy count is generated
//	ERROR: ErrAgeTooYoung, ErrLabelMismatch, or ErrNotEligible if the borrower is not eligible (checked first)
//	ERROR: ErrOutOfStock if no copy is left
//	IDEMPOTENCY: ErrAlreadyHeld if the borrower already holds the book, no event generated
func Decide(s State, _ Command) core.DecisionResult {
	if err := core.CheckEligibility(s.Borrower, s.Book); err != nil {
		return core.ErrorDecision(err)
	}

	if !s.Book.InStock() {
		return core.ErrorDecision(core.ErrOutOfStock)
	}

	if s.Borrower.Holds(s.Book.ISBN) {
		return core.IdempotentDecision(core.ErrAlreadyHeld)
	}

	return core.SuccessDecision(
		core.BuildBookBorrowed(
			s.Borrower.Category(),
			s.Borrower.ID(),
			s.Book.ISBN,
			s.Book.Copies-1,
		),
	)
}
