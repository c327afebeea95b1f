package swapbook

import "strings"

const (
	commandType = "SwapBook"
)

// Command represents the intent to return one held book and borrow another one instead.
type Command struct {
	BorrowerID string
	ReturnISBN string
	BorrowISBN string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID string, returnISBN string, borrowISBN string) Command {
	return Command{
		BorrowerID: strings.TrimSpace(borrowerID),
		ReturnISBN: strings.TrimSpace(returnISBN),
		BorrowISBN: strings.TrimSpace(borrowISBN),
	}
}
