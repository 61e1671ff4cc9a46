package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/invoke"
	"github.com/vk/bake/internal/registry"
	"github.com/vk/bake/internal/task"
)

// Build resolves each invocation against the registry and expands the
// resolved roots, left to right, into a deduplicated linear plan.
func Build(ctx context.Context, reg *registry.Registry, invocations []*invoke.Invocation) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	b := &builder{
		reg:     reg,
		placed:  make(map[string]bool),
		onStack: make(map[string]bool),
	}

	for _, inv := range invocations {
		root, err := reg.Resolve(inv.Task)
		if err != nil {
			return nil, err
		}
		logger.Debug("Resolved root invocation.", "token", inv.Raw, "task", root.Name)

		if err := b.place(root, inv.Args, true); err != nil {
			return nil, err
		}
	}

	logger.Debug("Execution plan built.", "tasks", len(b.entries))
	return &Plan{Entries: b.entries}, nil
}

// builder holds the state of one expansion. The placed set lives exactly
// as long as one command-line invocation; nothing leaks across runs.
type builder struct {
	reg    *registry.Registry
	placed map[string]bool

	// stack and onStack track the active expansion path for cycle
	// detection and reporting.
	stack   []string
	onStack map[string]bool

	entries []Entry
}

// place appends t to the plan after recursively placing its dependencies.
// Dependency-pulled references to an already-placed task are skipped
// entirely; explicit roots always get a slot of their own.
func (b *builder) place(t *task.Task, args task.Args, root bool) error {
	if b.onStack[t.Name] {
		cycle := append(b.cyclePath(t.Name), t.Name)
		return fmt.Errorf("%w: circular dependency: %s", task.ErrConfiguration, strings.Join(cycle, " -> "))
	}
	if !root && b.placed[t.Name] {
		return nil
	}

	b.stack = append(b.stack, t.Name)
	b.onStack[t.Name] = true

	for _, depName := range t.DependsOn {
		dep, ok := b.reg.Lookup(depName)
		if !ok {
			return fmt.Errorf("%w: task %q depends on unknown task %q", task.ErrConfiguration, t.Name, depName)
		}
		if err := b.place(dep, task.Args{}, false); err != nil {
			return err
		}
	}

	b.stack = b.stack[:len(b.stack)-1]
	delete(b.onStack, t.Name)

	b.placed[t.Name] = true
	b.entries = append(b.entries, Entry{Task: t, Args: args, Root: root})
	return nil
}

// cyclePath returns the portion of the active stack starting at the first
// occurrence of name, so the error names the cycle and not the whole path.
func (b *builder) cyclePath(name string) []string {
	for i, n := range b.stack {
		if n == name {
			return append([]string(nil), b.stack[i:]...)
		}
	}
	return append([]string(nil), b.stack...)
}
