package variable

import "github.com/pkg/errors"

var (
	ErrUnresolvedVariable = errors.New("unresolved variable")
	ErrCommandFailed      = errors.New("variable command failed")
)
