package pkgdiff

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/osforge/osforge/internal/ostree"
	"github.com/osforge/osforge/internal/paths"
	"github.com/osforge/osforge/internal/rpmdb"
	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

const (

	// Commit argument selecting the newest commit of the stream.
	Latest = "latest"

	// Location of the package database inside a commit.
	DefaultDBPath = "/lib/rpm/Packages"

	// Name of the metadata file inside a version directory.
	MetadataFile = "metadata.json"
)

// Package sets of a build.
type PackageInfo struct {
	Installed []rpmdb.Package `json:"installed"`
	New       []rpmdb.Package `json:"new"`
	Removed   []rpmdb.Package `json:"removed"`
	Updated   []Update        `json:"updated"`
}

// Description of one build snapshot.
type Metadata struct {
	Reference   string      `json:"reference"`
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Commit      string      `json:"commit"`
	Parent      *string     `json:"parent"`
	PackageInfo PackageInfo `json:"package_info"`

	version stream.Version
}

// Assembles [Metadata] for commits of a stream.
type Generator struct {
	store      ostree.Store
	reader     rpmdb.Reader
	comparator rpmdb.Comparator
	dbPath     string
}

// Configures a [Generator].
type Option func(*Generator)

// Reads the package database from path instead of [DefaultDBPath].
func WithDBPath(path string) Option {
	return func(g *Generator) {
		if path != "" {
			g.dbPath = path
		}
	}
}

// Creates a new [Generator].
func NewGenerator(store ostree.Store, reader rpmdb.Reader, comparator rpmdb.Comparator, opts ...Option) *Generator {
	g := &Generator{
		store:      store,
		reader:     reader,
		comparator: comparator,
		dbPath:     DefaultDBPath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Builds the metadata of a commit of s.
//
// commit is a checksum or [Latest]. When the commit has a parent, the
// package sets of both are compared; otherwise only the installed packages
// are reported.
func (g *Generator) Generate(ctx context.Context, s *stream.Stream, commit string) (*Metadata, error) {
	commit, err := g.resolve(ctx, commit)
	if err != nil {
		return nil, err
	}

	version, err := g.store.Version(ctx, commit)
	if err != nil {
		return nil, errors.Wrap(ErrMetadata, err.Error())
	}
	description, err := g.store.Description(ctx, commit)
	if err != nil {
		return nil, errors.Wrap(ErrMetadata, err.Error())
	}
	parent, err := g.store.Parent(ctx, commit)
	if err != nil {
		return nil, errors.Wrap(ErrMetadata, err.Error())
	}

	current, err := g.packages(ctx, commit)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		Reference:   s.String(),
		Version:     version.Native(),
		Description: description,
		Commit:      commit,
		version:     version,
	}

	var previous map[string]rpmdb.Package
	if parent != "" {
		meta.Parent = &parent
		if previous, err = g.packages(ctx, parent); err != nil {
			return nil, err
		}
	}

	diff := Compute(current, previous, g.comparator)
	meta.PackageInfo = PackageInfo{
		Installed: Installed(current),
		New:       diff.New,
		Removed:   diff.Removed,
		Updated:   diff.Updated,
	}

	slog.Debug("package diff",
		"commit", commit,
		"installed", len(meta.PackageInfo.Installed),
		"new", len(diff.New),
		"removed", len(diff.Removed),
		"updated", len(diff.Updated),
	)

	return meta, nil
}

// Returns the checksum designated by commit.
func (g *Generator) resolve(ctx context.Context, commit string) (string, error) {
	if commit == Latest {
		latest, err := g.store.Latest(ctx)
		if err != nil {
			return "", errors.Wrapf(ErrMetadata, "failed to get latest commit: %v", err)
		}
		return latest, nil
	}

	ok, err := g.store.Exists(ctx, commit)
	if err != nil {
		return "", errors.Wrap(ErrMetadata, err.Error())
	}
	if !ok {
		return "", errors.Wrapf(ErrMetadata, "failed to get %q commit", commit)
	}
	return commit, nil
}

// Reads the package set recorded in a commit.
func (g *Generator) packages(ctx context.Context, commit string) (map[string]rpmdb.Package, error) {
	raw, err := g.store.ReadFile(ctx, commit, g.dbPath)
	if err != nil {
		return nil, errors.Wrap(ErrMetadata, err.Error())
	}
	pkgs, err := g.reader.Read(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrMetadata, "commit %s: %v", commit, err)
	}
	return pkgs, nil
}

// Writes the metadata as JSON. A positive indent pretty-prints with that
// many spaces per level.
func (m *Metadata) Encode(w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(m)
}

// Returns "<vars dir>/<version path>/metadata.json" for s.
func (m *Metadata) Path(s *stream.Stream) string {
	return filepath.Join(s.VarsDir(), m.version.Path(), MetadataFile)
}

// Writes the metadata into the version directory of s and returns the path
// written. The version directory is created if needed.
func (m *Metadata) Write(s *stream.Stream, indent int) (string, error) {
	path := m.Path(s)
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return "", errors.Wrap(ErrMetadata, err.Error())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return "", errors.Wrap(ErrMetadata, err.Error())
	}
	defer f.Close()

	if err := m.Encode(f, indent); err != nil {
		return "", errors.Wrap(ErrMetadata, err.Error())
	}
	return path, f.Close()
}
