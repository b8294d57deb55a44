package service

import (
	"sort"

	"github.com/osforge/osforge/internal/variable"
	"github.com/pkg/errors"
)

// Declared build step.
//
// A Service is parsed from the pipeline document once. Its argument values
// are resolved against the pool right before execution into a fresh map; the
// descriptor itself is never mutated.
type Service struct {
	Name      Name                // Build step identifier.
	Args      map[string]string   // Template arguments, may contain "$name" tokens.
	WithPrint bool                // Echo output while the step runs.
	AsRoot    bool                // Run with elevated privileges.
	Skip      bool                // Bypass the step entirely.
	Capture   string              // Variable receiving the trimmed output on success.
	Variables []variable.Variable // Variables registered on top of the task pool.
}

// Outcome of a single service execution.
type Result struct {
	Service  *Service // Service that produced the result.
	Content  string   // Merged standard output and standard error.
	ExitCode int      // Exit code of the process, -1 if killed by a signal.
}

// Returns true if the service exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Returns the service arguments with every "$name" token resolved.
//
// Arguments are resolved in key order so the reported unresolved token is
// deterministic.
func (s *Service) ResolveArgs(pool *variable.Pool) (map[string]string, error) {
	keys := make([]string, 0, len(s.Args))
	for k := range s.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resolved := make(map[string]string, len(s.Args))
	for _, k := range keys {
		v, err := pool.Substitute(s.Args[k])
		if err != nil {
			return nil, errors.Wrapf(err, "service %s argument %q", s.Name, k)
		}
		resolved[k] = v
	}
	return resolved, nil
}
