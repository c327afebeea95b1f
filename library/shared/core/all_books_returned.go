package core

// AllBooksReturnedEventType is the event type identifier.
const AllBooksReturnedEventType = "AllBooksReturned"

// AllBooksReturned represents a borrower returning the whole held set at once.
type AllBooksReturned struct {
	Category   Category
	BorrowerID string
	Returns    []BookReturned
}

// BuildAllBooksReturned creates a new AllBooksReturned event.
func BuildAllBooksReturned(category Category, borrowerID string, returns []BookReturned) AllBooksReturned {
	return AllBooksReturned{
		Category:   category,
		BorrowerID: borrowerID,
		Returns:    returns,
	}
}

// EventType returns the event type identifier.
func (e AllBooksReturned) EventType() string {
	return AllBooksReturnedEventType
}
