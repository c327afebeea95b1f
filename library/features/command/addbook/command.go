package addbook

import "strings"

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book. An empty Label means general.
type Command struct {
	ISBN   string
	Title  string
	Author string
	Year   int
	Copies int
	Label  string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(isbn, title, author string, year, copies int, label string) Command {
	return Command{
		ISBN:   strings.TrimSpace(isbn),
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Year:   year,
		Copies: copies,
		Label:  strings.TrimSpace(label),
	}
}
