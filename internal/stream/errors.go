package stream

import "github.com/pkg/errors"

var (
	ErrInvalidStream  = errors.New("invalid stream")
	ErrInvalidVersion = errors.New("invalid version")
	ErrUnknownValue   = errors.New("unknown value")
)
