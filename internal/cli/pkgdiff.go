package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osforge/osforge/internal/ostree"
	"github.com/osforge/osforge/internal/pkgdiff"
	"github.com/osforge/osforge/internal/rpmdb"
	"github.com/osforge/osforge/internal/stream"
)

// Represents the 'osforge pkgdiff' command.
type PkgdiffCmd struct {
	API      pkgdiffAPIFlag `short:"a" name:"api" help:"Print the argument template and exit."`
	Stream   string         `arg:"" help:"Stream reference, e.g. altcos/x86_64/sisyphus/base."`
	RepoRoot string         `arg:"" name:"repo_root" help:"Repository root holding all streams."`
	Commit   string         `arg:"" help:"Commit checksum, or \"latest\"."`
	Mode     string         `short:"m" enum:"bare,bare-user,archive" default:"bare" help:"ostree repository mode (${enum})."`
	Write    bool           `short:"w" help:"Write the metadata to the version directory of the stream."`
	Indent   int            `short:"i" help:"Indent the JSON output by this many spaces."`
	DBPath   string         `name:"db-path" default:"${default_dbpath}" help:"Package database location inside the commit."`
}

// Executes the pkgdiff command.
func (c *PkgdiffCmd) Run(ctx context.Context) error {
	s, err := stream.ParseStream(c.RepoRoot, c.Stream)
	if err != nil {
		return err
	}

	mode, err := stream.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	repo := ostree.NewRepo(s.RepoDir(mode), s.String())
	if err := repo.Open(); err != nil {
		return err
	}

	gen := pkgdiff.NewGenerator(repo,
		rpmdb.NewDBReaderNamed(filepath.Base(c.DBPath)),
		rpmdb.VersionComparator{},
		pkgdiff.WithDBPath(c.DBPath),
	)

	meta, err := gen.Generate(ctx, s, c.Commit)
	if err != nil {
		return err
	}

	if !c.Write {
		return meta.Encode(os.Stdout, c.Indent)
	}

	path, err := meta.Write(s, c.Indent)
	if err != nil {
		return err
	}
	slog.Info("metadata written", "path", path)
	return nil
}
