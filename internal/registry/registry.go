package registry

import (
	"fmt"
	"sort"

	"github.com/vk/bake/internal/task"
)

// Registry stores all registered tasks for a single application instance,
// keyed by name, plus the optional default task.
type Registry struct {
	tasks map[string]*task.Task
	// names mirrors the map keys in sorted order; the prefix resolver
	// scans it instead of re-sorting per lookup.
	names       []string
	defaultName string
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{tasks: make(map[string]*task.Task)}
}

// Add registers a task. Registering two tasks with the same name is a
// configuration error.
func (r *Registry) Add(t *task.Task) error {
	if _, exists := r.tasks[t.Name]; exists {
		return fmt.Errorf("%w: duplicate task name %q", task.ErrConfiguration, t.Name)
	}
	r.tasks[t.Name] = t

	i := sort.SearchStrings(r.names, t.Name)
	r.names = append(r.names, "")
	copy(r.names[i+1:], r.names[i:])
	r.names[i] = t.Name
	return nil
}

// SetDefault records the task to run when the command line names none.
// Setting a second, different default is a configuration error.
func (r *Registry) SetDefault(name string) error {
	if r.defaultName != "" && r.defaultName != name {
		return fmt.Errorf("%w: more than one default task (%q and %q)", task.ErrConfiguration, r.defaultName, name)
	}
	r.defaultName = name
	return nil
}

// Default returns the default task, or nil when none is configured.
func (r *Registry) Default() *task.Task {
	if r.defaultName == "" {
		return nil
	}
	return r.tasks[r.defaultName]
}

// Lookup returns the task with exactly the given name.
func (r *Registry) Lookup(name string) (*task.Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Names returns all registered task names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Validate checks cross-task integrity after loading: every declared
// dependency must resolve to a registered task, and so must the default.
func (r *Registry) Validate() error {
	for _, name := range r.names {
		for _, dep := range r.tasks[name].DependsOn {
			if _, ok := r.tasks[dep]; !ok {
				return fmt.Errorf("%w: task %q depends on unknown task %q", task.ErrConfiguration, name, dep)
			}
		}
	}
	if r.defaultName != "" {
		if _, ok := r.tasks[r.defaultName]; !ok {
			return fmt.Errorf("%w: default task %q is not a registered task", task.ErrConfiguration, r.defaultName)
		}
	}
	return nil
}
