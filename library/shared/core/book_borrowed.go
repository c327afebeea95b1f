package core

// BookBorrowedEventType is the event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed represents a borrower taking one copy of a book.
// RemainingCopies is the copy count after the borrow.
type BookBorrowed struct {
	Category        Category
	BorrowerID      string
	ISBN            string
	RemainingCopies int
}

// BuildBookBorrowed creates a new BookBorrowed event.
func BuildBookBorrowed(category Category, borrowerID string, isbn string, remainingCopies int) BookBorrowed {
	return BookBorrowed{
		Category:        category,
		BorrowerID:      borrowerID,
		ISBN:            isbn,
		RemainingCopies: remainingCopies,
	}
}

// EventType returns the event type identifier.
func (e BookBorrowed) EventType() string {
	return BookBorrowedEventType
}
