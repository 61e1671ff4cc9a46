package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/bake/internal/app"
	"github.com/vk/bake/internal/cli"
	"github.com/vk/bake/internal/taskfile"
)

// main is the entrypoint for the bake binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	config, tokens, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	bakeApp, err := app.NewApp(outW, config, taskfile.NewLoader())
	if err != nil {
		return err
	}

	return bakeApp.Run(context.Background(), tokens)
}
