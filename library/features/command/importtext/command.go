package importtext

const (
	commandType = "ImportText"
)

// Command carries the text to import.
type Command struct {
	Data []byte
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(data []byte) Command {
	return Command{
		Data: data,
	}
}
