package ostree

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

// Default ostree command.
const DefaultCommand = "ostree"

// [Store] backed by the ostree command line tool.
type Repo struct {
	path    string // Repository directory.
	ref     string // Branch holding the stream history.
	command string // ostree executable.
}

// Creates a new [Repo] for the repository at path, following branch ref.
func NewRepo(path, ref string) *Repo {
	return &Repo{path: path, ref: ref, command: DefaultCommand}
}

// Returns a copy of the repo that runs command instead of ostree.
func (r *Repo) WithCommand(command string) *Repo {
	c := *r
	c.command = command
	return &c
}

// Returns the repository directory.
func (r *Repo) Path() string {
	return r.path
}

// Returns an error if the directory does not hold an ostree repository.
func (r *Repo) Open() error {
	if _, err := os.Stat(filepath.Join(r.path, "config")); err != nil {
		return errors.Wrapf(ErrRepository, "failed to open %q repository", r.path)
	}
	return nil
}

// Reports whether the commit resolves in the repository. A checksum the
// repository does not know is not an error.
func (r *Repo) Exists(ctx context.Context, commit string) (bool, error) {
	if err := ValidateChecksum(commit); err != nil {
		return false, err
	}
	if _, err := r.run(ctx, "rev-parse", commit); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, errors.Wrap(ErrRepository, err.Error())
	}
	return true, nil
}

// Returns the checksum the stream branch points to, or [ErrNoCommit] if the
// branch does not resolve.
func (r *Repo) Latest(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", r.ref)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", errors.Wrapf(ErrNoCommit, "branch %s", r.ref)
		}
		return "", errors.Wrap(ErrRepository, err.Error())
	}
	commit := strings.TrimSpace(string(out))
	if err := ValidateChecksum(commit); err != nil {
		return "", err
	}
	return commit, nil
}

// Returns the parent checksum read from "ostree show", or "" for a root
// commit.
func (r *Repo) Parent(ctx context.Context, commit string) (string, error) {
	info, err := r.show(ctx, commit)
	if err != nil {
		return "", err
	}
	return info.parent, nil
}

// Returns the version stored under the "version" metadata key of the
// commit.
func (r *Repo) Version(ctx context.Context, commit string) (stream.Version, error) {
	if err := ValidateChecksum(commit); err != nil {
		return stream.Version{}, err
	}
	out, err := r.run(ctx, "show", "--print-metadata-key=version", commit)
	if err != nil {
		return stream.Version{}, errors.Wrapf(ErrRepository, "commit %s has no version: %v", commit, err)
	}

	// Metadata values print as GVariant text, e.g. 'sisyphus_base.1.2'.
	raw := strings.Trim(strings.TrimSpace(string(out)), "'\"")
	v, err := stream.ParseVersion(raw)
	if err != nil {
		return stream.Version{}, errors.Wrapf(ErrRepository, "commit %s: %v", commit, err)
	}
	return v, nil
}

// Returns the subject line of the commit.
func (r *Repo) Description(ctx context.Context, commit string) (string, error) {
	info, err := r.show(ctx, commit)
	if err != nil {
		return "", err
	}
	return info.subject, nil
}

// Returns the contents of path inside the commit tree.
func (r *Repo) ReadFile(ctx context.Context, commit, path string) ([]byte, error) {
	if err := ValidateChecksum(commit); err != nil {
		return nil, err
	}
	out, err := r.run(ctx, "cat", commit, path)
	if err != nil {
		return nil, errors.Wrapf(ErrRepository, "read %s in %s: %v", path, commit, err)
	}
	return out, nil
}

// Fields parsed from "ostree show".
type commitInfo struct {
	parent  string
	subject string
}

// Parses the header and subject printed by "ostree show".
//
//	commit 5d2c...
//	Parent:  a1b2...
//	Date:  2024-01-01 00:00:00 +0000
//
//	    subject line
func (r *Repo) show(ctx context.Context, commit string) (*commitInfo, error) {
	if err := ValidateChecksum(commit); err != nil {
		return nil, err
	}
	out, err := r.run(ctx, "show", commit)
	if err != nil {
		return nil, errors.Wrapf(ErrRepository, "show %s: %v", commit, err)
	}

	info := &commitInfo{}
	header := true
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			if line == "" {
				header = false
				continue
			}
			if value, ok := strings.CutPrefix(line, "Parent:"); ok {
				info.parent = strings.TrimSpace(value)
			}
			continue
		}
		if s := strings.TrimSpace(line); s != "" {
			info.subject = s
			break
		}
	}
	return info, scanner.Err()
}

// Runs an ostree subcommand against the repository and returns stdout.
func (r *Repo) run(ctx context.Context, args ...string) ([]byte, error) {
	args = append([]string{"--repo=" + r.path}, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running ostree", "args", args)

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "%s %s (%s)", r.command, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
