package executor

import (
	"fmt"
	"io"
)

// EventSink receives task lifecycle events in execution order. The
// executor guarantees the ordering; how events are rendered is entirely
// the sink's concern.
type EventSink interface {
	TaskIgnored(name string)
	TaskStarted(name string)
	TaskCompleted(name string)
	TaskFailed(name string, err error)
}

// ConsoleSink renders lifecycle events as plain text lines.
type ConsoleSink struct {
	W io.Writer
}

func (s ConsoleSink) TaskIgnored(name string) {
	fmt.Fprintf(s.W, "Ignoring task %q\n", name)
}

func (s ConsoleSink) TaskStarted(name string) {
	fmt.Fprintf(s.W, "Starting task %q\n", name)
}

func (s ConsoleSink) TaskCompleted(name string) {
	fmt.Fprintf(s.W, "Completed task %q\n", name)
}

func (s ConsoleSink) TaskFailed(name string, err error) {
	fmt.Fprintf(s.W, "Error in task %q: %v\n", name, err)
	fmt.Fprintln(s.W, "Aborting build")
}
