package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osforge/osforge/internal/buildsum"
	"github.com/osforge/osforge/internal/stream"
)

// Represents the 'osforge buildsum' command.
type BuildsumCmd struct {
	API     buildsumAPIFlag `short:"a" name:"api" help:"Print the argument template and exit."`
	Branch  string          `arg:"" enum:"sisyphus,p10" help:"Branch to summarize (${enum})."`
	Storage string          `arg:"" type:"existingdir" help:"Build storage root."`
	Write   bool            `short:"w" help:"Write the summary to <storage>/<branch>.json."`
	Indent  int             `short:"i" help:"Indent the JSON output by this many spaces."`
}

// Executes the buildsum command.
func (c *BuildsumCmd) Run(ctx context.Context) error {
	branch, err := stream.ParseBranch(c.Branch)
	if err != nil {
		return err
	}

	summary, err := buildsum.New(branch, c.Storage).Collect()
	if err != nil {
		return err
	}

	if !c.Write {
		return buildsum.Encode(os.Stdout, summary, c.Indent)
	}

	if err := buildsum.Write(c.Storage, branch, summary, c.Indent); err != nil {
		return err
	}
	slog.Info("build summary written", "path", filepath.Join(c.Storage, c.Branch+".json"))
	return nil
}
