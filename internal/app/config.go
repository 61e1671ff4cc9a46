package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// TaskfilePath points at a taskfile or a directory of taskfiles.
	// Empty means discover bake.hcl in the working directory or an
	// ancestor.
	TaskfilePath string

	// ListTasks selects the -l listing instead of execution.
	ListTasks bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config, filling in defaults for the log settings.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
