// Package executor runs an execution plan strictly in order, one task at
// a time.
//
// Sequential execution is deliberate even where independent branches could
// run concurrently: it keeps lifecycle-event ordering deterministic and
// identical to the plan. Each plan entry moves through a small state
// machine (PENDING, RUNNING, then COMPLETED, IGNORED or FAILED); the first
// failure stops the remainder of the plan. There are no retries, no
// timeouts and no rollback of tasks that already completed.
package executor
