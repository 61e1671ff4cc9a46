package executor

import (
	"context"
	"fmt"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/plan"
	"github.com/vk/bake/internal/task"
)

// Executor runs one plan to completion or to its first failure.
type Executor struct {
	sink   EventSink
	states []State
}

// New creates an Executor emitting lifecycle events to the given sink.
func New(sink EventSink) *Executor {
	return &Executor{sink: sink}
}

// States returns a snapshot of the per-entry states after (or during) a
// run, in plan order.
func (e *Executor) States() []State {
	out := make([]State, len(e.states))
	copy(out, e.states)
	return out
}

// Run processes the plan strictly in order. Ignored tasks emit an ignore
// event and skip their body; any other task runs with the arguments
// attached to its plan entry. The first failure aborts the remainder.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx)
	e.states = make([]State, len(p.Entries))

	for i, entry := range p.Entries {
		name := entry.Task.Name

		if entry.Task.Ignored {
			e.transition(i, name, Ignored)
			e.sink.TaskIgnored(name)
			logger.Debug("Task ignored.", "task", name)
			continue
		}

		e.transition(i, name, Running)
		e.sink.TaskStarted(name)
		logger.Debug("Task started.", "task", name, "root", entry.Root)

		if err := entry.Task.Action(ctx, entry.Args); err != nil {
			e.transition(i, name, Failed)
			e.sink.TaskFailed(name, err)
			logger.Error("Task failed.", "task", name, "error", err)
			return fmt.Errorf("%w: task %q: %w", task.ErrExecution, name, err)
		}

		e.transition(i, name, Completed)
		e.sink.TaskCompleted(name)
		logger.Debug("Task completed.", "task", name)
	}

	return nil
}

// transition moves entry i to the given state, panicking on an illegal
// move. Illegal transitions can only come from an executor bug, never from
// user input, so a panic is the honest signal.
func (e *Executor) transition(i int, name string, to State) {
	from := e.states[i]
	if !allowedTransition(from, to) {
		panic(fmt.Sprintf("executor: illegal state transition for task %q: %s -> %s", name, from, to))
	}
	e.states[i] = to
}
