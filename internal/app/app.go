package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/bake/internal/ctxlog"
	"github.com/vk/bake/internal/fsutil"
	"github.com/vk/bake/internal/registry"
	"github.com/vk/bake/internal/task"
	"github.com/vk/bake/internal/taskfile"
)

// Loader supplies the initial task descriptor set plus the optional
// default-task name. The concrete implementation lives in the taskfile
// package; the interface keeps the core testable with in-memory loaders.
type Loader interface {
	Load(ctx context.Context, path string) ([]*task.Task, string, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	reg      *registry.Registry
	taskpath string
}

// NewApp constructs a fully initialized App: logger built, taskfile
// discovered and loaded, registry populated and validated.
func NewApp(outW io.Writer, cfg *Config, loader Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	path := cfg.TaskfilePath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, err = fsutil.FindFileUpward(cwd, taskfile.DefaultName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", task.ErrConfiguration, err)
		}
		logger.Debug("Discovered taskfile.", "path", path)
	}

	tasks, defaultName, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for _, t := range tasks {
		if err := reg.Add(t); err != nil {
			return nil, err
		}
	}
	if defaultName != "" {
		if err := reg.SetDefault(defaultName); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Registry populated.", "tasks", reg.Len(), "default", defaultName)

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		reg:      reg,
		taskpath: path,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}
