package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/osforge/osforge/internal"
	"github.com/osforge/osforge/internal/pkgdiff"
)

// Represents the root command for osforge.
var RootCmd struct {
	Quiet    bool        `short:"q" help:"Suppress informational output."`
	Verbose  bool        `short:"v" help:"Add source locations to log records."`
	Debug    bool        `short:"d" help:"Enable debug output."`
	Run      RunCmd      `cmd:"" help:"Run a pipeline document."`
	Plan     PlanCmd     `cmd:"" help:"Print the service chain of a pipeline document as a DOT graph."`
	Buildsum BuildsumCmd `cmd:"" help:"Collect a summary of the stored build artifacts of a branch."`
	Pkgdiff  PkgdiffCmd  `cmd:"" help:"Describe a commit and the package changes since its parent."`
	Stream   StreamCmd   `cmd:"" help:"Inspect a stream."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Operating system image build orchestrator.\n\nRuns pipelines of build services and indexes their outputs."),
		kong.UsageOnError(),
		kong.Vars{
			"version":        internal.VersionString(),
			"default_dbpath": pkgdiff.DefaultDBPath,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}
