package swapbook

import (
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// State is the part of the catalog the decision depends on.
// If both ISBNs of the command are equal, ReturnBook and BorrowBook are the same book.
type State struct {
	Borrower   core.Borrower
	ReturnBook core.Book
	BorrowBook core.Book
}

// Decide implements the business logic to determine whether a borrower may exchange one book for another.
//
// Business Rules:
//
//	GIVEN: A borrower, a book to return, and a book to borrow
//	WHEN: SwapBook command is received
//	THEN: BookSwapped event with both updated copy counts is generated
//	ERROR: ErrNotHeld if the borrower does not hold the book to return
//	NO-OP: BookSwapped with unchanged copy counts if both books are the same
//	ERROR: ErrAgeTooYoung, ErrLabelMismatch, or ErrNotEligible if the borrower is not eligible for the new book
//	ERROR: ErrOutOfStock if no copy of the new book is left
//	ERROR: ErrAlreadyHeld if the borrower already holds the new book
func Decide(s State, command Command) core.DecisionResult {
	if !s.Borrower.Holds(s.ReturnBook.ISBN) {
		return core.ErrorDecision(core.ErrNotHeld)
	}

	category, borrowerID := s.Borrower.Category(), s.Borrower.ID()

	if command.ReturnISBN == command.BorrowISBN {
		return core.SuccessDecision(
			core.BuildBookSwapped(
				core.BuildBookReturned(category, borrowerID, s.ReturnBook.ISBN, s.ReturnBook.Copies),
				core.BuildBookBorrowed(category, borrowerID, s.BorrowBook.ISBN, s.BorrowBook.Copies),
			),
		)
	}

	if err := core.CheckEligibility(s.Borrower, s.BorrowBook); err != nil {
		return core.ErrorDecision(err)
	}

	if !s.BorrowBook.InStock() {
		return core.ErrorDecision(core.ErrOutOfStock)
	}

	if s.Borrower.Holds(s.BorrowBook.ISBN) {
		return core.ErrorDecision(core.ErrAlreadyHeld)
	}

	return core.SuccessDecision(
		core.BuildBookSwapped(
			core.BuildBookReturned(category, borrowerID, s.ReturnBook.ISBN, s.ReturnBook.Copies+1),
			core.BuildBookBorrowed(category, borrowerID, s.BorrowBook.ISBN, s.BorrowBook.Copies-1),
		),
	)
}
