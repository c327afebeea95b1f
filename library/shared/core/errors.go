package core

import (
	"errors"
	"fmt"
)

// ErrRefused is the parent of all business-rule refusals.
// Refusals are expected outcomes: no mutation happened and the caller may try something else.
var ErrRefused = errors.New("refused")

// ErrNotEligible is returned if the borrower may not borrow the book.
var ErrNotEligible = fmt.Errorf("%w: borrower is not eligible for this book", ErrRefused)

// ErrAgeTooYoung is returned if a pupil is younger than MinimumPupilAge.
var ErrAgeTooYoung = fmt.Errorf("%w: pupil is too young", ErrNotEligible)

// ErrLabelMismatch is returned if a pupil tries to borrow a book that is not labeled for children.
var ErrLabelMismatch = fmt.Errorf("%w: book label is not allowed for pupils", ErrNotEligible)

// ErrOutOfStock is returned if no copy of the book is available.
var ErrOutOfStock = fmt.Errorf("%w: no copies left", ErrRefused)

// ErrAlreadyHeld is returned if the borrower already holds the book.
var ErrAlreadyHeld = fmt.Errorf("%w: book is already held by this borrower", ErrRefused)

// ErrNotHeld is returned if the borrower does not hold the book.
var ErrNotHeld = fmt.Errorf("%w: book is not held by this borrower", ErrRefused)

var ErrInvalidIdentifier = errors.New("identifier must consist of exactly 5 digits")
var ErrUnknownCategory = errors.New("identifier does not belong to a known borrower category")
var ErrCategoryMismatch = errors.New("identifier does not match the requested borrower category")
var ErrUnknownLabel = errors.New("unknown book label")
var ErrInvalidBook = errors.New("book is not valid")
var ErrInvalidBorrower = errors.New("borrower is not valid")
