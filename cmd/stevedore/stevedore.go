package main

import (
	"errors"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/harborhq/stevedore/internal"
	"github.com/harborhq/stevedore/internal/cli"
)

// The entry point for the stevedore CLI.
//
// Initializes logging, displays startup information, and executes the root
// command. A workload exit code is propagated as the process exit code; any
// other error exits with code 1.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("stevedore invoked",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           logLevel(),
		ReportTimestamp: false,
		Prefix:          internal.Name,
	})
	return slog.New(handler)
}

// Returns the log level derived from build-time linker flags.
func logLevel() charmlog.Level {
	if internal.IsDebug() {
		return charmlog.DebugLevel
	}
	if internal.IsQuiet() {
		return charmlog.WarnLevel
	}
	return charmlog.InfoLevel
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
