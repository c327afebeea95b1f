package borrowbook

import "strings"

const (
	commandType = "BorrowBook"
)

// Command represents the intent to lend one copy of a book to a borrower.
type Command struct {
	BorrowerID string
	ISBN       string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID string, isbn string) Command {
	return Command{
		BorrowerID: strings.TrimSpace(borrowerID),
		ISBN:       strings.TrimSpace(isbn),
	}
}
