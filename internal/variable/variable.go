package variable

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"regexp"
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// Matches a "$name" token. Tokens are matched whole, so "$ab" is never read
// as "$a" followed by "b".
var tokenPattern = regexp.MustCompile(`\$\w+`)

// Controls how a nonzero exit from a command variable is handled.
type Policy int

const (

	// Keeps the captured standard output and logs a warning.
	Lenient Policy = iota

	// Fails the registration with [ErrCommandFailed].
	Strict
)

// Named value available for substitution.
type Variable struct {
	Name    string // Name without the leading "$".
	Value   string // Literal value, or a shell command line if Command is set.
	Export  bool   // Whether the value is added to child process environments.
	Command bool   // Whether Value is replaced by the output of running it.
}

// Returns the "$name" token under which the variable is stored.
func (v Variable) Token() string {
	return "$" + v.Name
}

// Ordered mapping from "$name" tokens to resolved variables.
//
// A Pool is not safe for concurrent use. Pipelines mutate it from a single
// goroutine between service invocations.
type Pool struct {
	keys    []string            // Tokens in first-registration order.
	entries map[string]Variable // Resolved variables keyed by token.
	policy  Policy              // Handling of failing command variables.
	environ []string            // Base environment for command variables.
}

// Configures a [Pool].
type Option func(*Pool)

// Sets the policy applied to command variables that exit nonzero.
func WithPolicy(policy Policy) Option {
	return func(p *Pool) {
		p.policy = policy
	}
}

// Sets the base environment for command variables. Defaults to the process
// environment at the time the pool is created.
func WithEnviron(environ []string) Option {
	return func(p *Pool) {
		p.environ = slices.Clone(environ)
	}
}

// Creates an empty [Pool].
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		entries: make(map[string]Variable),
		environ: os.Environ(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolves a variable against the pool and inserts it.
//
// Every "$name" token in the value is substituted in one pass. If the
// variable is a command, the substituted value is run with /bin/sh and its
// untrimmed standard output becomes the value. On any failure the pool is
// left unchanged.
func (p *Pool) Register(ctx context.Context, v Variable) error {
	value, err := p.Substitute(v.Value)
	if err != nil {
		return errors.Wrapf(err, "variable %q", v.Name)
	}

	if v.Command {
		value, err = p.runCommand(ctx, v.Name, value)
		if err != nil {
			return err
		}
	}

	v.Value = value
	p.set(v)

	slog.Debug("variable registered", "name", v.Name, "export", v.Export, "command", v.Command)
	return nil
}

// Inserts v as is. The value is neither substituted nor run, so captured
// output containing "$" stays literal.
func (p *Pool) Set(v Variable) {
	v.Command = false
	p.set(v)
}

// Replaces every "$name" token in s with its pool value.
//
// Fails with [ErrUnresolvedVariable] naming the first token that is not in
// the pool.
func (p *Pool) Substitute(s string) (string, error) {
	var missing string

	out := tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		v, ok := p.entries[token]
		if !ok {
			if missing == "" {
				missing = token
			}
			return token
		}
		return v.Value
	})

	if missing != "" {
		return "", errors.Wrapf(ErrUnresolvedVariable, "%q is not set", missing)
	}
	return out, nil
}

// Returns the variable registered under name, without the leading "$".
func (p *Pool) Lookup(name string) (Variable, bool) {
	v, ok := p.entries["$"+name]
	return v, ok
}

// Returns the number of variables in the pool.
func (p *Pool) Len() int {
	return len(p.keys)
}

// Returns the variable names in registration order.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		names = append(names, p.entries[k].Name)
	}
	return names
}

// Returns the name to value mapping of all exported variables.
func (p *Pool) Export() map[string]string {
	export := make(map[string]string)
	for _, v := range p.entries {
		if v.Export {
			export[v.Name] = v.Value
		}
	}
	return export
}

// Overlays the entries of other on the receiver. Entries of other win on
// collision.
func (p *Pool) Merge(other *Pool) {
	for _, k := range other.keys {
		p.set(other.entries[k])
	}
}

// Returns an independent copy of the pool.
func (p *Pool) Clone() *Pool {
	return &Pool{
		keys:    slices.Clone(p.keys),
		entries: maps.Clone(p.entries),
		policy:  p.policy,
		environ: slices.Clone(p.environ),
	}
}

// Returns base with the pool's export view appended as "key=value" entries.
//
// Exported names are appended in sorted order. When a name already exists in
// base the exported value wins, since os/exec keeps the last duplicate.
func (p *Pool) Environ(base []string) []string {
	export := p.Export()

	names := make([]string, 0, len(export))
	for name := range export {
		names = append(names, name)
	}
	sort.Strings(names)

	env := slices.Clone(base)
	for _, name := range names {
		env = append(env, name+"="+export[name])
	}
	return env
}

// Inserts or replaces a variable, keeping the position of an existing token.
func (p *Pool) set(v Variable) {
	token := v.Token()
	if _, ok := p.entries[token]; !ok {
		p.keys = append(p.keys, token)
	}
	p.entries[token] = v
}
