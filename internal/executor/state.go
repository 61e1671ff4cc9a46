package executor

import "fmt"

// State is the runtime execution state of one plan entry.
type State int

const (
	Pending State = iota
	Running
	Completed
	Ignored
	Failed
)

// String returns the state name used in diagnostics and logs.
func (s State) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Running:
		return "RUNNING"
	case Completed:
		return "COMPLETED"
	case Ignored:
		return "IGNORED"
	case Failed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// allowedTransition encodes the legal moves of the per-task state machine:
// PENDING -> RUNNING -> {COMPLETED, FAILED}, plus the PENDING -> IGNORED
// shortcut for tasks whose body is never invoked.
func allowedTransition(from, to State) bool {
	switch from {
	case Pending:
		return to == Running || to == Ignored
	case Running:
		return to == Completed || to == Failed
	default:
		return false
	}
}
