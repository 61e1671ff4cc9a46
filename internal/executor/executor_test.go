package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bake/internal/plan"
	"github.com/vk/bake/internal/task"
)

// recordingSink captures lifecycle events in the order they were emitted.
type recordingSink struct {
	events []string
}

func (s *recordingSink) TaskIgnored(name string)   { s.events = append(s.events, "ignored "+name) }
func (s *recordingSink) TaskStarted(name string)   { s.events = append(s.events, "started "+name) }
func (s *recordingSink) TaskCompleted(name string) { s.events = append(s.events, "completed "+name) }
func (s *recordingSink) TaskFailed(name string, err error) {
	s.events = append(s.events, "failed "+name)
}

// runRecorder returns an action that appends the task's name to ran.
func runRecorder(ran *[]string, name string) task.Action {
	return func(ctx context.Context, args task.Args) error {
		*ran = append(*ran, name)
		return nil
	}
}

func entry(t *task.Task, args task.Args, root bool) plan.Entry {
	return plan.Entry{Task: t, Args: args, Root: root}
}

func TestRunHappyPath(t *testing.T) {
	var ran []string
	sink := &recordingSink{}

	p := &plan.Plan{Entries: []plan.Entry{
		entry(&task.Task{Name: "clean", Action: runRecorder(&ran, "clean")}, task.Args{}, false),
		entry(&task.Task{Name: "html", Action: runRecorder(&ran, "html")}, task.Args{}, true),
	}}

	e := New(sink)
	require.NoError(t, e.Run(context.Background(), p))

	assert.Equal(t, []string{"clean", "html"}, ran)
	assert.Equal(t, []string{
		"started clean", "completed clean",
		"started html", "completed html",
	}, sink.events)
	assert.Equal(t, []State{Completed, Completed}, e.States())
}

func TestRunIgnoredTask(t *testing.T) {
	var ran []string
	sink := &recordingSink{}

	bodyMustNotRun := func(ctx context.Context, args task.Args) error {
		t.Fatal("ignored task body was invoked")
		return nil
	}

	p := &plan.Plan{Entries: []plan.Entry{
		entry(&task.Task{Name: "clean", Action: runRecorder(&ran, "clean")}, task.Args{}, false),
		entry(&task.Task{Name: "images", Ignored: true, Action: bodyMustNotRun}, task.Args{}, true),
	}}

	e := New(sink)
	require.NoError(t, e.Run(context.Background(), p))

	assert.Equal(t, []string{"clean"}, ran, "ignoring suppresses only the ignored task's body")
	assert.Equal(t, []string{
		"started clean", "completed clean",
		"ignored images",
	}, sink.events)
	assert.Equal(t, []State{Completed, Ignored}, e.States())
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var ran []string
	sink := &recordingSink{}
	boom := errors.New("boom")

	p := &plan.Plan{Entries: []plan.Entry{
		entry(&task.Task{Name: "a", Action: runRecorder(&ran, "a")}, task.Args{}, false),
		entry(&task.Task{Name: "b", Action: func(ctx context.Context, args task.Args) error {
			return boom
		}}, task.Args{}, false),
		entry(&task.Task{Name: "c", Action: runRecorder(&ran, "c")}, task.Args{}, true),
	}}

	e := New(sink)
	err := e.Run(context.Background(), p)
	require.Error(t, err)

	assert.True(t, errors.Is(err, task.ErrExecution))
	assert.True(t, errors.Is(err, boom))
	assert.ErrorContains(t, err, `task "b"`)

	assert.Equal(t, []string{"a"}, ran, "c must never start")
	assert.Equal(t, []string{
		"started a", "completed a",
		"started b", "failed b",
	}, sink.events)
	assert.Equal(t, []State{Completed, Failed, Pending}, e.States())
}

func TestRunPassesArguments(t *testing.T) {
	var got task.Args
	p := &plan.Plan{Entries: []plan.Entry{
		entry(&task.Task{Name: "echo", Action: func(ctx context.Context, args task.Args) error {
			got = args
			return nil
		}}, task.Args{
			Positional: []string{"hello"},
			Keyword:    map[string]string{"foo": "bar"},
		}, true),
	}}

	require.NoError(t, New(&recordingSink{}).Run(context.Background(), p))
	assert.Equal(t, []string{"hello"}, got.Positional)
	assert.Equal(t, map[string]string{"foo": "bar"}, got.Keyword)
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := ConsoleSink{W: &buf}

	sink.TaskIgnored("images")
	sink.TaskStarted("clean")
	sink.TaskCompleted("clean")
	sink.TaskFailed("html", fmt.Errorf("exit status 1"))

	assert.Equal(t,
		"Ignoring task \"images\"\n"+
			"Starting task \"clean\"\n"+
			"Completed task \"clean\"\n"+
			"Error in task \"html\": exit status 1\n"+
			"Aborting build\n",
		buf.String())
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, allowedTransition(Pending, Running))
	assert.True(t, allowedTransition(Pending, Ignored))
	assert.True(t, allowedTransition(Running, Completed))
	assert.True(t, allowedTransition(Running, Failed))

	assert.False(t, allowedTransition(Pending, Completed))
	assert.False(t, allowedTransition(Completed, Running))
	assert.False(t, allowedTransition(Ignored, Running))
	assert.False(t, allowedTransition(Failed, Running))
}
