package service

import "github.com/pkg/errors"

var (
	ErrService = errors.New("service error")

	// Introspection failures also match [ErrService].
	ErrServiceAPI = errors.Wrap(ErrService, "service api error")

	ErrUnknownService = errors.New("unknown service")
)
