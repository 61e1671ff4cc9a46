package plan

import "github.com/vk/bake/internal/task"

// Entry is one slot in the execution plan: a task plus the arguments it
// will be invoked with. Only slots created for explicit roots ever carry
// arguments; dependency-pulled slots always run with empty Args.
type Entry struct {
	Task *task.Task
	Args task.Args

	// Root marks entries that correspond to a task named explicitly on
	// the command line.
	Root bool
}

// Plan is an ordered sequence of entries in which every dependency
// precedes its dependents.
type Plan struct {
	Entries []Entry
}

// Names returns the task names in plan order. Mostly useful in tests and
// debug logging.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Task.Name
	}
	return names
}
