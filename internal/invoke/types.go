package invoke

import "github.com/vk/bake/internal/task"

// Invocation is the structured form of one task token from the command line.
type Invocation struct {
	// Raw is the token exactly as the user typed it.
	Raw string

	// Task is the task name part of the token, before any resolution of
	// abbreviations against the registry.
	Task string

	// Args holds the parsed positional and keyword arguments.
	Args task.Args
}
