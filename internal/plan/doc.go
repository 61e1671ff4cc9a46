// Package plan expands a sequence of root invocations into a linear
// execution plan.
//
// Each root is expanded depth-first, dependencies before dependents, with a
// single already-placed set shared across every root on the command line:
// a task pulled in as a dependency is placed once and once only, no matter
// how many branches reference it. A task named explicitly on the command
// line always receives its own plan slot carrying its own arguments, even
// when an earlier branch already placed it as a dependency. Cycles are
// rejected during expansion, before anything executes.
package plan
