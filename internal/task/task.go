// Package task defines the descriptor for a single runnable unit of work
// and the error taxonomy shared by the resolution and execution layers.
package task

import (
	"context"
	"strings"
)

// Args carries the arguments parsed from a single invocation token.
// Values are opaque strings; no type coercion happens at this layer.
type Args struct {
	Positional []string
	Keyword    map[string]string
}

// Empty reports whether the invocation carried no arguments at all.
func (a Args) Empty() bool {
	return len(a.Positional) == 0 && len(a.Keyword) == 0
}

// Action is the body of a task. It receives the arguments attached to the
// task's root invocation, or empty Args when the task was pulled in purely
// as a dependency. A non-nil error is the failure signal.
type Action func(ctx context.Context, args Args) error

// Task describes one registered task: its name, declared dependencies and
// the callable that performs the work.
type Task struct {
	// Name is unique within a registry.
	Name string

	// Description is free text; only its first line appears in listings.
	Description string

	// DependsOn holds the names of tasks that must run before this one,
	// in declaration order.
	DependsOn []string

	// Ignored tasks keep their place in the plan but never run their body.
	Ignored bool

	// Private tasks are invocable by name but omitted from listings.
	// A leading underscore in the name marks a task private implicitly.
	Private bool

	Action Action
}

// IsPrivate reports whether the task is hidden from listings.
func (t *Task) IsPrivate() bool {
	return t.Private || strings.HasPrefix(t.Name, "_")
}

// Summary returns the first line of the task's description.
func (t *Task) Summary() string {
	line, _, _ := strings.Cut(t.Description, "\n")
	return strings.TrimSpace(line)
}
