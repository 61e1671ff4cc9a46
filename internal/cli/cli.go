package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/vk/bake/internal/app"
	"github.com/vk/bake/internal/task"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the populated
// app.Config, the task invocation tokens, and a boolean indicating that
// the program should exit cleanly (help was requested).
func Parse(args []string, output io.Writer) (*app.Config, []string, bool, error) {
	flagSet := flag.NewFlagSet("bake", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Bake - a lightweight task-based build tool.

Usage:
  bake [options] [task[arg,...,key=value,...] ...]

Tasks and their dependencies are declared in a bake.hcl taskfile, looked
up in the current directory and then its ancestors. Task names may be
abbreviated to any unambiguous prefix.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to the taskfile or a directory of taskfiles.")
	fFlag := flagSet.String("f", "", "Path to the taskfile (shorthand).")
	listFlag := flagSet.Bool("list-tasks", false, "List the tasks instead of running anything.")
	lFlag := flagSet.Bool("l", false, "List the tasks (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *fileFlag
	if path == "" {
		path = *fFlag
	}

	config, err := app.NewConfig(app.Config{
		TaskfilePath: path,
		ListTasks:    *listFlag || *lFlag,
		LogFormat:    *logFormatFlag,
		LogLevel:     *logLevelFlag,
	})
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, flagSet.Args(), false, nil
}

// ExitCode maps an error to the process exit status: usage, configuration
// and invocation errors exit 2; a failed task body exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, task.ErrConfiguration) || errors.Is(err, task.ErrInvocation) {
		return 2
	}
	return 1
}
