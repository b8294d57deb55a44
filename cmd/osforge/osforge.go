package main

import (
	"log/slog"
	"os"

	"github.com/osforge/osforge/internal"
	"github.com/osforge/osforge/internal/cli"
)

// The entry point for osforge.
//
// Initializes logging, displays startup information, and executes the root
// command. If any error occurs during execution, it exits with a non-zero code.
func main() {
	os.Exit(run())
}

// Runs the program and returns its exit code.
func run() int {
	slog.SetDefault(cli.NewLogger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("osforge is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		return 1
	}
	return 0
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
