package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/osforge/osforge/internal"
)

// Level shared by every logger created here, adjusted after flag parsing.
var level slog.LevelVar

// Creates the program logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via [Execute].
func NewLogger() *slog.Logger {
	level.Set(logLevel(internal.IsDebug(), internal.IsQuiet()))
	return newLogger(os.Stderr, internal.IsVerbose())
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     &level,
		AddSource: verbose,
	})
	return slog.New(handler.WithGroup(internal.Name))
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	internal.SetDebug(debug)
	internal.SetQuiet(quiet)
	internal.SetVerbose(verbose)

	level.Set(logLevel(debug, quiet))

	if verbose {
		slog.SetDefault(newLogger(os.Stderr, true))
	}
}

// Debug wins over quiet.
func logLevel(debug, quiet bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
