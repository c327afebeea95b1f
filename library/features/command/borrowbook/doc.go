// Package borrowbook implements lending one copy of a book to a student or a pupil.
//
// The handler locks the borrower and the book, decides with the pure Decide function, and applies the
// resulting BookBorrowed event in the same transaction. Borrowing a book the borrower already holds is an
// idempotent refusal: nothing changes and core.ErrAlreadyHeld is returned.
package borrowbook
