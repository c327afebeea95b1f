package registerborrower

import (
	"strings"

	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

const (
	commandType = "RegisterBorrower"
)

// Command represents the intent to register a borrower. Age is only used for pupils.
type Command struct {
	Category core.Category
	UserID   string
	Name     string
	Surname  string
	Group    string
	Age      int
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildStudentCommand creates a Command that registers a student.
func BuildStudentCommand(userID, name, surname, group string) Command {
	return Command{
		Category: core.CategoryStudent,
		UserID:   strings.TrimSpace(userID),
		Name:     strings.TrimSpace(name),
		Surname:  strings.TrimSpace(surname),
		Group:    strings.TrimSpace(group),
	}
}

// BuildPupilCommand creates a Command that registers a pupil of the given age.
func BuildPupilCommand(userID, name, surname, group string, age int) Command {
	command := BuildStudentCommand(userID, name, surname, group)
	command.Category = core.CategoryPupil
	command.Age = age

	return command
}
