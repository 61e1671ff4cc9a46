// Package cli parses the command line into an app.Config plus the raw
// task invocation tokens, and maps errors onto process exit codes.
package cli
