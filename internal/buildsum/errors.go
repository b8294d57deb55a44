package buildsum

import "github.com/pkg/errors"

var (
	ErrCollect = errors.New("failed to collect build summary")
)
