// Package ostreetest provides an in-memory [ostree.Store] for tests.
package ostreetest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/osforge/osforge/internal/ostree"
	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

// Commit held by a [Repo].
type Commit struct {
	Checksum    string
	Parent      string
	Version     stream.Version
	Description string
	Files       map[string][]byte
}

// In-memory commit history of one branch.
type Repo struct {
	commits map[string]*Commit
	head    string
}

var _ ostree.Store = (*Repo)(nil)

// Creates an empty [Repo].
func NewRepo() *Repo {
	return &Repo{commits: make(map[string]*Commit)}
}

// Appends a commit on top of the current head and returns it.
//
// The checksum is derived from the number of commits so histories built the
// same way are identical.
func (r *Repo) Commit(version stream.Version, description string, files map[string][]byte) *Commit {
	sum := sha256.Sum256([]byte("commit-" + strconv.Itoa(len(r.commits))))
	c := &Commit{
		Checksum:    hex.EncodeToString(sum[:]),
		Parent:      r.head,
		Version:     version,
		Description: description,
		Files:       files,
	}
	r.commits[c.Checksum] = c
	r.head = c.Checksum
	return c
}

func (r *Repo) Exists(_ context.Context, commit string) (bool, error) {
	if err := ostree.ValidateChecksum(commit); err != nil {
		return false, err
	}
	_, ok := r.commits[commit]
	return ok, nil
}

func (r *Repo) Latest(context.Context) (string, error) {
	if r.head == "" {
		return "", ostree.ErrNoCommit
	}
	return r.head, nil
}

func (r *Repo) Parent(_ context.Context, commit string) (string, error) {
	c, err := r.lookup(commit)
	if err != nil {
		return "", err
	}
	return c.Parent, nil
}

func (r *Repo) Version(_ context.Context, commit string) (stream.Version, error) {
	c, err := r.lookup(commit)
	if err != nil {
		return stream.Version{}, err
	}
	return c.Version, nil
}

func (r *Repo) Description(_ context.Context, commit string) (string, error) {
	c, err := r.lookup(commit)
	if err != nil {
		return "", err
	}
	return c.Description, nil
}

func (r *Repo) ReadFile(_ context.Context, commit, path string) ([]byte, error) {
	c, err := r.lookup(commit)
	if err != nil {
		return nil, err
	}
	data, ok := c.Files[path]
	if !ok {
		return nil, errors.Wrapf(ostree.ErrRepository, "%s not found in %s", path, commit)
	}
	return data, nil
}

func (r *Repo) lookup(commit string) (*Commit, error) {
	c, ok := r.commits[commit]
	if !ok {
		return nil, errors.Wrapf(ostree.ErrRepository, "commit %s not found", commit)
	}
	return c, nil
}
