// Package app wires the pieces of the tool together: configuration,
// logging, taskfile loading, registry population, and the
// resolve/execute/list operations the CLI layer calls.
package app
