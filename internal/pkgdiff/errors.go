package pkgdiff

import "github.com/pkg/errors"

var (
	ErrMetadata = errors.New("failed to generate metadata")
)
