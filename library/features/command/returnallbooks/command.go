package returnallbooks

import "strings"

const (
	commandType = "ReturnAllBooks"
)

// Command represents the intent to return the whole held set of a borrower.
type Command struct {
	BorrowerID string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID string) Command {
	return Command{
		BorrowerID: strings.TrimSpace(borrowerID),
	}
}
