package task

import "errors"

// The three error categories every failure in the core maps onto.
// Errors wrap exactly one of these sentinels so callers can pick an exit
// status with errors.Is without parsing messages.
var (
	// ErrConfiguration covers defects in the taskfile itself: duplicate
	// task names, more than one default task, a dependency that does not
	// resolve, or a circular dependency.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvocation covers defects in what the user typed: unknown task
	// names, ambiguous abbreviations, malformed argument syntax, or a
	// duplicate keyword argument.
	ErrInvocation = errors.New("invocation error")

	// ErrExecution marks a task body that signalled failure.
	ErrExecution = errors.New("execution error")
)
