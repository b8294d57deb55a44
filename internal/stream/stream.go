package stream

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Named lineage of builds for one branch and architecture.
type Stream struct {
	Root   string // Repository root holding all streams.
	OSName string // Operating system name, first reference component.
	Arch   Arch   // Target architecture.
	Branch Branch // Distribution branch.
	Name   string // Stream name within the branch.
}

// Parses a stream reference of the form "<osname>/<arch>/<branch>/<name>".
func ParseStream(root, ref string) (*Stream, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 || slices.Contains(parts, "") {
		return nil, errors.Wrapf(ErrInvalidStream, "%q is not <osname>/<arch>/<branch>/<name>", ref)
	}

	arch, err := ParseArch(parts[1])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidStream, "%q: %v", ref, err)
	}

	branch, err := ParseBranch(parts[2])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidStream, "%q: %v", ref, err)
	}

	return &Stream{
		Root:   root,
		OSName: parts[0],
		Arch:   arch,
		Branch: branch,
		Name:   parts[3],
	}, nil
}

// Returns the stream reference, which is also the ostree branch name.
func (s *Stream) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", s.OSName, s.Arch, s.Branch, s.Name)
}

// Returns the stream directory, "<root>/<branch>/<arch>/<name>".
func (s *Stream) Dir() string {
	return filepath.Join(s.Root, string(s.Branch), string(s.Arch), s.Name)
}

// Returns the directory holding per-version build variables and metadata.
func (s *Stream) VarsDir() string {
	return filepath.Join(s.Dir(), "vars")
}

// Returns the path of the stream's ostree repository for a mode.
func (s *Stream) RepoDir(mode Mode) string {
	return filepath.Join(s.Dir(), string(mode), "repo")
}

// Returns version major.minor of this stream.
func (s *Stream) Version(major, minor uint) Version {
	return Version{Major: major, Minor: minor, Branch: s.Branch, Name: s.Name}
}

// Renders the stream as "KEY=value" lines suitable for shell evaluation.
func (s *Stream) Export() string {
	vars := []struct{ key, value string }{
		{"STREAM_REF", s.String()},
		{"STREAM_OSNAME", s.OSName},
		{"STREAM_ARCH", string(s.Arch)},
		{"STREAM_BRANCH", string(s.Branch)},
		{"STREAM_NAME", s.Name},
		{"STREAM_DIR", s.Dir()},
		{"STREAM_VARS_DIR", s.VarsDir()},
	}

	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%s=%s\n", v.key, v.value)
	}
	return b.String()
}
