package cli

import (
	"context"
	"fmt"

	"github.com/osforge/osforge/internal/ostree"
	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

// Represents the 'osforge stream' command group.
type StreamCmd struct {
	Export  StreamExportCmd  `cmd:"" help:"Print the stream as KEY=value lines."`
	Version StreamVersionCmd `cmd:"" help:"Print the version of a commit of the stream."`
	Commit  StreamCommitCmd  `cmd:"" help:"Print the latest commit of the stream."`
}

// Holds the positional arguments shared by the stream commands.
type StreamRef struct {
	Stream   string `arg:"" help:"Stream reference, e.g. altcos/x86_64/sisyphus/base."`
	RepoRoot string `arg:"" name:"repo_root" help:"Repository root holding all streams."`
}

func (r *StreamRef) parse() (*stream.Stream, error) {
	return stream.ParseStream(r.RepoRoot, r.Stream)
}

// Holds the repository mode flag shared by the stream commands.
type RepoMode struct {
	Mode string `short:"m" enum:"bare,bare-user,archive" default:"bare" help:"ostree repository mode (${enum})."`
}

func (m *RepoMode) open(s *stream.Stream) (*ostree.Repo, error) {
	mode, err := stream.ParseMode(m.Mode)
	if err != nil {
		return nil, err
	}
	repo := ostree.NewRepo(s.RepoDir(mode), s.String())
	if err := repo.Open(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Represents the 'osforge stream export' command.
type StreamExportCmd struct {
	StreamRef `embed:""`
}

// Executes the stream export command.
func (c *StreamExportCmd) Run(ctx context.Context) error {
	s, err := c.parse()
	if err != nil {
		return err
	}
	fmt.Print(s.Export())
	return nil
}

// Represents the 'osforge stream version' command.
type StreamVersionCmd struct {
	StreamRef  `embed:""`
	RepoMode   `embed:""`
	Next       string `short:"n" enum:",major,minor" default:"" help:"Increment this version part (major, minor)."`
	Commit     string `short:"c" help:"Commit checksum. Defaults to the latest commit."`
	View       string `enum:"native,path,full" default:"native" help:"Output rendering (${enum})."`
	ResetMinor bool   `help:"Reset the minor part on a major increment."`
}

// Executes the stream version command.
//
// With --next and an empty history the first version, 0.0, is printed.
func (c *StreamVersionCmd) Run(ctx context.Context) error {
	s, err := c.parse()
	if err != nil {
		return err
	}
	repo, err := c.open(s)
	if err != nil {
		return err
	}

	version, err := c.version(ctx, s, repo)
	if err != nil {
		return err
	}

	fmt.Println(render(version, c.View))
	return nil
}

func (c *StreamVersionCmd) version(ctx context.Context, s *stream.Stream, repo ostree.Store) (stream.Version, error) {
	commit := c.Commit
	if commit == "" {
		latest, err := repo.Latest(ctx)
		if errors.Is(err, ostree.ErrNoCommit) && c.Next != "" {
			return s.Version(0, 0), nil
		}
		if err != nil {
			return stream.Version{}, err
		}
		commit = latest
	} else {
		ok, err := repo.Exists(ctx, commit)
		if err != nil {
			return stream.Version{}, err
		}
		if !ok {
			return stream.Version{}, errors.Wrapf(ostree.ErrNoCommit, "commit %s", commit)
		}
	}

	version, err := repo.Version(ctx, commit)
	if err != nil {
		return stream.Version{}, err
	}

	if c.Next == "" {
		return version, nil
	}

	policy := stream.KeepMinor
	if c.ResetMinor {
		policy = stream.ResetMinor
	}
	return version.Next(stream.Part(c.Next), policy)
}

// Returns the requested rendering of v.
func render(v stream.Version, view string) string {
	switch view {
	case "path":
		return v.Path()
	case "full":
		return v.Full()
	}
	return v.Native()
}

// Represents the 'osforge stream commit' command.
type StreamCommitCmd struct {
	StreamRef `embed:""`
	RepoMode  `embed:""`
}

// Executes the stream commit command.
func (c *StreamCommitCmd) Run(ctx context.Context) error {
	s, err := c.parse()
	if err != nil {
		return err
	}
	repo, err := c.open(s)
	if err != nil {
		return err
	}

	commit, err := repo.Latest(ctx)
	if err != nil {
		return err
	}
	fmt.Println(commit)
	return nil
}
