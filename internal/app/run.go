package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/executor"
	"github.com/vk/bake/internal/invoke"
	"github.com/vk/bake/internal/plan"
)

// Run is the top-level operation behind one CLI invocation: list tasks,
// or resolve the given tokens into a plan and execute it. With no tokens
// the default task runs; lacking one, the listing is printed instead.
func (a *App) Run(ctx context.Context, tokens []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.cfg.ListTasks {
		a.List()
		return nil
	}

	if len(tokens) == 0 {
		def := a.reg.Default()
		if def == nil {
			a.List()
			return nil
		}
		a.logger.Debug("No task named on the command line, running default.", "task", def.Name)
		tokens = []string{def.Name}
	}

	p, err := a.Resolve(ctx, tokens)
	if err != nil {
		return err
	}
	a.logger.Debug("Execution plan resolved.", "plan", p.Names())

	return a.Execute(ctx, p)
}

// Resolve parses each token and expands the resulting invocations into a
// linear execution plan. Any configuration or invocation error surfaces
// here, before a single task body has run.
func (a *App) Resolve(ctx context.Context, tokens []string) (*plan.Plan, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	invocations := make([]*invoke.Invocation, 0, len(tokens))
	for _, token := range tokens {
		inv, err := invoke.Parse(token)
		if err != nil {
			return nil, err
		}
		invocations = append(invocations, inv)
	}

	return plan.Build(ctx, a.reg, invocations)
}

// Execute runs the plan under an exclusive file lock held next to the
// taskfile, so two concurrent runs against the same workspace cannot
// interleave task bodies.
func (a *App) Execute(ctx context.Context, p *plan.Plan) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	lock := flock.New(a.taskpath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", lock.Path(), err)
	}
	defer lock.Unlock()

	exec := executor.New(executor.ConsoleSink{W: a.outW})
	return exec.Run(ctx, p)
}

// List prints the task listing: every non-private task with its markers
// and the first line of its description, sorted by name.
func (a *App) List() {
	rows := a.reg.List()
	if len(rows) == 0 {
		fmt.Fprintln(a.outW, "No tasks found.")
		return
	}

	fmt.Fprintf(a.outW, "Tasks in build file %s:\n\n", filepath.Base(a.taskpath))

	nameWidth, attrWidth := 0, 0
	attrs := make([]string, len(rows))
	for i, row := range rows {
		var marks []string
		if row.Default {
			marks = append(marks, "Default")
		}
		if row.Ignored {
			marks = append(marks, "Ignored")
		}
		if len(marks) > 0 {
			attrs[i] = "[" + strings.Join(marks, ",") + "]"
		}
		nameWidth = max(nameWidth, len(row.Name))
		attrWidth = max(attrWidth, len(attrs[i]))
	}

	for i, row := range rows {
		fmt.Fprintf(a.outW, "  %-*s  %-*s  %s\n", nameWidth, row.Name, attrWidth, attrs[i], row.Summary)
	}
}
