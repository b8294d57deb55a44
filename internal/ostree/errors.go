package ostree

import "github.com/pkg/errors"

var (
	ErrRepository = errors.New("repository error")
	ErrNoCommit   = errors.Wrap(ErrRepository, "no commit found")
)
