package ostree

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/osforge/osforge/internal/stream"
	"github.com/pkg/errors"
)

// Read access to the commit history of one stream.
type Store interface {

	// Reports whether the commit is present in the repository.
	Exists(ctx context.Context, commit string) (bool, error)

	// Returns the checksum of the newest commit on the stream branch, or
	// [ErrNoCommit] if the branch has none.
	Latest(ctx context.Context) (string, error)

	// Returns the checksum of the parent commit, or "" at the root of
	// history.
	Parent(ctx context.Context, commit string) (string, error)

	// Returns the version recorded in the commit metadata.
	Version(ctx context.Context, commit string) (stream.Version, error)

	// Returns the commit subject.
	Description(ctx context.Context, commit string) (string, error)

	// Returns the contents of a file inside the commit.
	ReadFile(ctx context.Context, commit, path string) ([]byte, error)
}

// Returns an error unless commit is a well-formed SHA-256 checksum.
func ValidateChecksum(commit string) error {
	if err := digest.NewDigestFromEncoded(digest.SHA256, commit).Validate(); err != nil {
		return errors.Wrapf(ErrRepository, "invalid commit %q: %v", commit, err)
	}
	return nil
}
