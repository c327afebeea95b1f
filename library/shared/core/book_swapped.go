package core

// BookSwappedEventType is the event type identifier.
const BookSwappedEventType = "BookSwapped"

// BookSwapped represents a return of one book and a borrow of another as one change.
type BookSwapped struct {
	Returned BookReturned
	Borrowed BookBorrowed
}

// BuildBookSwapped creates a new BookSwapped event.
func BuildBookSwapped(returned BookReturned, borrowed BookBorrowed) BookSwapped {
	return BookSwapped{
		Returned: returned,
		Borrowed: borrowed,
	}
}

// EventType returns the event type identifier.
func (e BookSwapped) EventType() string {
	return BookSwappedEventType
}
