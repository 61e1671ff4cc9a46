package taskfile

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/task"
)

// action builds the callable for a task: evaluate the command expression
// against env/param, then run it through the shell. Keyword arguments are
// only reachable through ${param.*} interpolation; positional arguments
// become $1, $2, ... of the shell invocation.
func (l *Loader) action(name string, command hcl.Expression) task.Action {
	return func(ctx context.Context, args task.Args) error {
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"env":   envObject(l.Environ),
				"param": paramObject(args.Keyword),
			},
		}

		val, diags := command.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating command for task %q: %s", name, diags.Error())
		}
		if val.Type() != cty.String {
			return fmt.Errorf("command for task %q must be a string, got %s", name, val.Type().FriendlyName())
		}
		script := val.AsString()

		ctxlog.FromContext(ctx).Debug("Running command.", "task", name, "command", script, "args", args.Positional)

		// argv[0] of the script is the tool name; positional invocation
		// arguments land in $1 and up.
		argv := append([]string{"-c", script, "bake"}, args.Positional...)
		cmd := exec.CommandContext(ctx, "sh", argv...)
		cmd.Stdout = l.Stdout
		cmd.Stderr = l.Stderr
		return cmd.Run()
	}
}

// envObject exposes the process environment as a cty object keyed by
// variable name.
func envObject(environ []string) cty.Value {
	vals := make(map[string]cty.Value, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vals[key] = cty.StringVal(value)
	}
	return cty.ObjectVal(vals)
}

// paramObject exposes an invocation's keyword arguments as a cty object.
func paramObject(keyword map[string]string) cty.Value {
	if len(keyword) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(keyword))
	for key, value := range keyword {
		vals[key] = cty.StringVal(value)
	}
	return cty.ObjectVal(vals)
}
