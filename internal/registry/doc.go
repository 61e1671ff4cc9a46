// Package registry holds the set of task descriptors for one application
// instance.
//
// The registry is populated exactly once per CLI run from whatever loader
// discovered the taskfile, then treated as read-only: the resolver, the
// plan builder and the lister all consume it without mutating it. Besides
// storage it owns the two read paths the CLI needs — resolving a possibly
// abbreviated user token to exactly one task, and producing the sorted
// listing rows for the -l flag.
package registry
