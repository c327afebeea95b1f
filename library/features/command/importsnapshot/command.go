package importsnapshot

const (
	commandType = "ImportSnapshot"
)

// Command carries the snapshot to import. WipeFirst deletes the whole catalog before the import.
type Command struct {
	Data      []byte
	WipeFirst bool
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(data []byte, wipeFirst bool) Command {
	return Command{
		Data:      data,
		WipeFirst: wipeFirst,
	}
}
