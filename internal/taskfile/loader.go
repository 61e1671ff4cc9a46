package taskfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/fsutil"
	"github.com/vk/bake/internal/task"
)

// DefaultName is the taskfile name looked up when none is given explicitly.
const DefaultName = "bake.hcl"

// Loader parses taskfiles into task descriptors. The fields exist so tests
// can pin the environment and capture command output; NewLoader wires the
// real process values.
type Loader struct {
	Environ []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewLoader returns a Loader bound to the current process environment and
// standard streams.
func NewLoader() *Loader {
	return &Loader{
		Environ: os.Environ(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// hclTask mirrors one `task "name" { ... }` block.
type hclTask struct {
	Name        string         `hcl:"name,label"`
	Description *string        `hcl:"description"`
	DependsOn   *[]string      `hcl:"depends_on"`
	Ignored     *bool          `hcl:"ignored"`
	Private     *bool          `hcl:"private"`
	Command     hcl.Expression `hcl:"command"`
}

// hclFile mirrors the top level of a taskfile.
type hclFile struct {
	Default *string    `hcl:"default"`
	Tasks   []*hclTask `hcl:"task,block"`
}

// Load parses the taskfile at path, or every .hcl file under it when path
// is a directory, and returns the task descriptors plus the name of the
// default task ("" when none is declared).
func (l *Loader) Load(ctx context.Context, path string) ([]*task.Task, string, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findFiles(path)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("Loading taskfiles.", "files", files)

	parser := hclparse.NewParser()
	var tasks []*task.Task
	defaultName := ""

	for _, file := range files {
		hclF, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, "", fmt.Errorf("%w: failed to parse taskfile %s: %s", task.ErrConfiguration, file, diags.Error())
		}

		var parsed hclFile
		if diags := gohcl.DecodeBody(hclF.Body, nil, &parsed); diags.HasErrors() {
			return nil, "", fmt.Errorf("%w: failed to decode taskfile %s: %s", task.ErrConfiguration, file, diags.Error())
		}

		if parsed.Default != nil {
			if defaultName != "" && defaultName != *parsed.Default {
				return nil, "", fmt.Errorf("%w: more than one default task (%q and %q)",
					task.ErrConfiguration, defaultName, *parsed.Default)
			}
			defaultName = *parsed.Default
		}

		for _, tb := range parsed.Tasks {
			tasks = append(tasks, l.newTask(tb))
		}
		logger.Debug("Loaded taskfile.", "file", file, "tasks", len(parsed.Tasks))
	}

	logger.Info("Taskfiles loaded.", "task_count", len(tasks), "default", defaultName)
	return tasks, defaultName, nil
}

// newTask converts a decoded block into a descriptor with a shell-command
// action bound to the block's command expression.
func (l *Loader) newTask(tb *hclTask) *task.Task {
	t := &task.Task{
		Name:   tb.Name,
		Action: l.action(tb.Name, tb.Command),
	}
	if tb.Description != nil {
		t.Description = *tb.Description
	}
	if tb.DependsOn != nil {
		t.DependsOn = *tb.DependsOn
	}
	if tb.Ignored != nil {
		t.Ignored = *tb.Ignored
	}
	if tb.Private != nil {
		t.Private = *tb.Private
	}
	return t
}

// findFiles resolves path into the ordered list of taskfiles to parse.
func (l *Loader) findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: taskfile %s: %v", task.ErrConfiguration, path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %v", task.ErrConfiguration, path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .hcl taskfiles found in %s", task.ErrConfiguration, path)
	}
	return files, nil
}
