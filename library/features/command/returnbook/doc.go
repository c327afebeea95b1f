// Package returnbook implements taking back one copy of a book from a borrower.
//
// Returning a book the borrower does not hold is an idempotent refusal: nothing changes and
// core.ErrNotHeld is returned.
package returnbook
