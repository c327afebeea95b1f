package core

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents a borrower bringing back one copy of a book.
// RemainingCopies is the copy count after the return.
type BookReturned struct {
	Category        Category
	BorrowerID      string
	ISBN            string
	RemainingCopies int
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(category Category, borrowerID string, isbn string, remainingCopies int) BookReturned {
	return BookReturned{
		Category:        category,
		BorrowerID:      borrowerID,
		ISBN:            isbn,
		RemainingCopies: remainingCopies,
	}
}

// EventType returns the event type identifier.
func (e BookReturned) EventType() string {
	return BookReturnedEventType
}
