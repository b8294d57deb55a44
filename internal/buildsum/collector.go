package buildsum

import (
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/osforge/osforge/internal/paths"
	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

// Files stored for one (version, platform, format) combination. Each slot
// holds a path relative to the storage root, or nil.
type Artifact struct {
	Location              *string `json:"location"`
	Signature             *string `json:"signature"`
	Uncompressed          *string `json:"uncompressed"`
	UncompressedSignature *string `json:"uncompressed_signature"`
}

type (
	FormatMapping   map[stream.Format]*Artifact
	PlatformMapping map[stream.Platform]FormatMapping
	VersionMapping  map[string]PlatformMapping
	StreamMapping   map[string]VersionMapping
	ArchMapping     map[stream.Arch]StreamMapping
	Summary         map[stream.Branch]ArchMapping
)

// Suffix taxonomy, checked in order. Files matching none of the patterns
// are uncompressed payloads.
var slots = []struct {
	pattern glob.Glob
	assign  func(a *Artifact, p *string)
}{
	{glob.MustCompile("*.tar.gz.sig"), func(a *Artifact, p *string) { a.Signature = p }},
	{glob.MustCompile("*.xz"), func(a *Artifact, p *string) { a.Location = p }},
	{glob.MustCompile("*.sig"), func(a *Artifact, p *string) { a.UncompressedSignature = p }},
}

// Walks the artifact tree of one branch.
type Collector struct {
	branch stream.Branch // Branch whose subtree is collected.
	fsys   fs.FS         // Storage root.
}

// Creates a new [Collector] over a storage directory.
func New(branch stream.Branch, storage string) *Collector {
	return NewFS(branch, os.DirFS(storage))
}

// Creates a new [Collector] over a file system rooted at the storage root.
func NewFS(branch stream.Branch, fsys fs.FS) *Collector {
	return &Collector{branch: branch, fsys: fsys}
}

// Returns the summary of every artifact stored for the branch.
func (c *Collector) Collect() (Summary, error) {
	arches, err := c.CollectArch()
	if err != nil {
		return nil, err
	}
	return Summary{c.branch: arches}, nil
}

// Returns the artifacts of every architecture.
func (c *Collector) CollectArch() (ArchMapping, error) {
	names, err := c.subdirs(string(c.branch))
	if err != nil {
		return nil, err
	}

	arches := make(ArchMapping, len(names))
	for _, name := range names {
		arch, err := stream.ParseArch(name)
		if err != nil {
			return nil, errors.Wrap(ErrCollect, err.Error())
		}
		if arches[arch], err = c.CollectStream(arch); err != nil {
			return nil, err
		}
	}
	return arches, nil
}

// Returns the artifacts of every stream of an architecture.
func (c *Collector) CollectStream(arch stream.Arch) (StreamMapping, error) {
	names, err := c.subdirs(string(c.branch), string(arch))
	if err != nil {
		return nil, err
	}

	streams := make(StreamMapping, len(names))
	for _, name := range names {
		if streams[name], err = c.CollectVersion(arch, name); err != nil {
			return nil, err
		}
	}
	return streams, nil
}

// Returns the artifacts of every version of a stream.
//
// Version directories are validated by combining the branch, the stream
// name, and the directory name into a full version rendering.
func (c *Collector) CollectVersion(arch stream.Arch, name string) (VersionMapping, error) {
	dirs, err := c.subdirs(string(c.branch), string(arch), name)
	if err != nil {
		return nil, err
	}

	versions := make(VersionMapping, len(dirs))
	for _, dir := range dirs {
		if _, err := stream.ParseVersion(string(c.branch) + "_" + name + "." + dir); err != nil {
			return nil, errors.Wrap(ErrCollect, err.Error())
		}
		if versions[dir], err = c.CollectPlatform(arch, name, dir); err != nil {
			return nil, err
		}
	}
	return versions, nil
}

// Returns the artifacts of every platform of a version directory.
func (c *Collector) CollectPlatform(arch stream.Arch, name, version string) (PlatformMapping, error) {
	dirs, err := c.subdirs(string(c.branch), string(arch), name, version)
	if err != nil {
		return nil, err
	}

	platforms := make(PlatformMapping, len(dirs))
	for _, dir := range dirs {
		platform, err := stream.ParsePlatform(dir)
		if err != nil {
			return nil, errors.Wrap(ErrCollect, err.Error())
		}
		if platforms[platform], err = c.CollectFormat(arch, name, version, platform); err != nil {
			return nil, err
		}
	}
	return platforms, nil
}

// Returns the artifacts of every format of a platform.
func (c *Collector) CollectFormat(arch stream.Arch, name, version string, platform stream.Platform) (FormatMapping, error) {
	dirs, err := c.subdirs(string(c.branch), string(arch), name, version, string(platform))
	if err != nil {
		return nil, err
	}

	formats := make(FormatMapping, len(dirs))
	for _, dir := range dirs {
		format, err := stream.ParseFormat(dir)
		if err != nil {
			return nil, errors.Wrap(ErrCollect, err.Error())
		}
		if formats[format], err = c.CollectArtifact(arch, name, version, platform, format); err != nil {
			return nil, err
		}
	}
	return formats, nil
}

// Classifies the files of one leaf directory into an [Artifact].
//
// Every regular file in the leaf is classified, dot files included. A
// missing leaf directory yields an artifact with every slot empty.
func (c *Collector) CollectArtifact(arch stream.Arch, name, version string, platform stream.Platform, format stream.Format) (*Artifact, error) {
	dir := path.Join(string(c.branch), string(arch), name, version, string(platform), string(format))

	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(ErrCollect, err.Error())
	}

	artifact := &Artifact{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		classify(artifact, entry.Name(), path.Join(dir, entry.Name()))
	}
	return artifact, nil
}

// Stores rel in the slot selected by the suffix of file.
func classify(a *Artifact, file, rel string) {
	for _, slot := range slots {
		if slot.pattern.Match(file) {
			slot.assign(a, &rel)
			return
		}
	}
	a.Uncompressed = &rel
}

// Returns the names of the visible subdirectories of a storage path, in
// lexical order. Regular files at intermediate levels are ignored.
func (c *Collector) subdirs(elem ...string) ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, path.Join(elem...))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(ErrCollect, err.Error())
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !hidden(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Dot directories are skipped above the leaf level.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Writes the summary as JSON. A positive indent pretty-prints with that
// many spaces per level.
func Encode(w io.Writer, summary Summary, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(summary)
}

// Writes the summary to "<storage>/<branch>.json".
func Write(storage string, branch stream.Branch, summary Summary, indent int) error {
	f, err := os.OpenFile(filepath.Join(storage, string(branch)+".json"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return errors.Wrap(ErrCollect, err.Error())
	}
	defer f.Close()

	if err := Encode(f, summary, indent); err != nil {
		return errors.Wrap(ErrCollect, err.Error())
	}
	return f.Close()
}
