package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bake/internal/task"
)

// stubLoader serves a fixed task set, ignoring the path it is given.
type stubLoader struct {
	tasks       []*task.Task
	defaultName string
}

func (l *stubLoader) Load(ctx context.Context, path string) ([]*task.Task, string, error) {
	return l.tasks, l.defaultName, nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{
		// Point inside a temp dir so the run lock has somewhere writable.
		TaskfilePath: filepath.Join(t.TempDir(), "bake.hcl"),
		LogLevel:     "error",
	})
	require.NoError(t, err)
	return cfg
}

// recorded returns a task whose action appends its name to ran.
func recorded(ran *[]string, name string, deps ...string) *task.Task {
	return &task.Task{
		Name:      name,
		DependsOn: deps,
		Action: func(ctx context.Context, args task.Args) error {
			*ran = append(*ran, name)
			return nil
		},
	}
}

func TestRunExecutesPlan(t *testing.T) {
	var ran []string
	loader := &stubLoader{tasks: []*task.Task{
		recorded(&ran, "clean"),
		recorded(&ran, "html", "clean"),
		recorded(&ran, "images", "clean"),
	}}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background(), []string{"html", "images"}))
	assert.Equal(t, []string{"clean", "html", "images"}, ran, "shared dependency runs exactly once")

	assert.Contains(t, out.String(), "Starting task \"clean\"")
	assert.Contains(t, out.String(), "Completed task \"html\"")
}

func TestRunDefaultTask(t *testing.T) {
	var ran []string
	loader := &stubLoader{
		tasks:       []*task.Task{recorded(&ran, "clean"), recorded(&ran, "html", "clean")},
		defaultName: "html",
	}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Equal(t, []string{"clean", "html"}, ran)
}

func TestRunWithoutTasksOrDefaultLists(t *testing.T) {
	var ran []string
	loader := &stubLoader{tasks: []*task.Task{recorded(&ran, "clean")}}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Empty(t, ran, "nothing must execute without tokens or a default")
	assert.Contains(t, out.String(), "clean")
}

func TestRunListFlag(t *testing.T) {
	var ran []string
	loader := &stubLoader{tasks: []*task.Task{
		recorded(&ran, "clean"),
		{Name: "_hidden", Action: func(ctx context.Context, args task.Args) error { return nil }},
	}}

	cfg := testConfig(t)
	cfg.ListTasks = true

	var out bytes.Buffer
	a, err := NewApp(&out, cfg, loader)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background(), []string{"clean"}))
	assert.Empty(t, ran)
	assert.Contains(t, out.String(), "clean")
	assert.NotContains(t, out.String(), "_hidden")
}

func TestRunInvocationError(t *testing.T) {
	var ran []string
	loader := &stubLoader{tasks: []*task.Task{recorded(&ran, "clean")}}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	err = a.Run(context.Background(), []string{"deploy"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrInvocation))
	assert.Empty(t, ran, "invocation errors abort before any task body runs")
}

func TestRunExecutionFailure(t *testing.T) {
	var ran []string
	loader := &stubLoader{tasks: []*task.Task{
		recorded(&ran, "a"),
		{Name: "b", DependsOn: []string{"a"}, Action: func(ctx context.Context, args task.Args) error {
			return fmt.Errorf("exit status 1")
		}},
		recorded(&ran, "c", "b"),
	}}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	err = a.Run(context.Background(), []string{"c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrExecution))
	assert.Equal(t, []string{"a"}, ran)
	assert.Contains(t, out.String(), "Error in task \"b\"")
	assert.Contains(t, out.String(), "Aborting build")
}

func TestNewAppConfigurationErrors(t *testing.T) {
	t.Run("duplicate task name", func(t *testing.T) {
		loader := &stubLoader{tasks: []*task.Task{{Name: "clean"}, {Name: "clean"}}}
		var out bytes.Buffer
		_, err := NewApp(&out, testConfig(t), loader)
		require.Error(t, err)
		assert.True(t, errors.Is(err, task.ErrConfiguration))
	})

	t.Run("unknown dependency", func(t *testing.T) {
		loader := &stubLoader{tasks: []*task.Task{{Name: "html", DependsOn: []string{"clean"}}}}
		var out bytes.Buffer
		_, err := NewApp(&out, testConfig(t), loader)
		require.Error(t, err)
		assert.True(t, errors.Is(err, task.ErrConfiguration))
	})

	t.Run("unknown default task", func(t *testing.T) {
		loader := &stubLoader{tasks: []*task.Task{{Name: "clean"}}, defaultName: "html"}
		var out bytes.Buffer
		_, err := NewApp(&out, testConfig(t), loader)
		require.Error(t, err)
		assert.True(t, errors.Is(err, task.ErrConfiguration))
	})
}

func TestListFormatting(t *testing.T) {
	loader := &stubLoader{
		tasks: []*task.Task{
			{Name: "clean", Description: "Remove build artifacts"},
			{Name: "html", Description: "Generate HTML"},
			{Name: "images", Ignored: true},
		},
		defaultName: "html",
	}

	var out bytes.Buffer
	a, err := NewApp(&out, testConfig(t), loader)
	require.NoError(t, err)

	a.List()
	listing := out.String()
	assert.Contains(t, listing, "Tasks in build file bake.hcl:")
	assert.Contains(t, listing, "[Default]")
	assert.Contains(t, listing, "[Ignored]")
	assert.Contains(t, listing, "Remove build artifacts")
}
