package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/osforge/osforge/internal/variable"
	"github.com/pkg/errors"
)

// Default command used to elevate privileged services.
const DefaultSudo = "sudo"

// Holds invoker configuration.
type Config struct {
	ScriptsDir string    // Directory holding the service executables.
	Credential string    // Password fed to sudo for privileged services. Empty means none.
	Environ    []string  // Parent environment. Nil uses the process environment.
	Echo       io.Writer // Destination for live output of printing services. Nil uses os.Stdout.
	Sudo       string    // Privilege escalation command. Empty uses [DefaultSudo].
}

// Launches services through the introspection protocol.
type Invoker struct {
	scriptsDir string
	credential string
	environ    []string
	echo       io.Writer
	sudo       string
}

// Creates a new [Invoker].
//
// The parent environment is snapshotted here; every launch adds the pool's
// export view on top of this snapshot.
func NewInvoker(cfg Config) *Invoker {
	inv := &Invoker{
		scriptsDir: cfg.ScriptsDir,
		credential: cfg.Credential,
		environ:    cfg.Environ,
		echo:       cfg.Echo,
		sudo:       cfg.Sudo,
	}
	if inv.environ == nil {
		inv.environ = os.Environ()
	}
	if inv.echo == nil {
		inv.echo = os.Stdout
	}
	if inv.sudo == "" {
		inv.sudo = DefaultSudo
	}
	return inv
}

// Returns an error if the service needs a credential the invoker lacks.
func (inv *Invoker) CheckPrivilege(s *Service) error {
	if s.AsRoot && inv.credential == "" {
		return errors.Wrapf(ErrService, "a password is required for the %s service", s.Name)
	}
	return nil
}

// Returns the absolute path of the service executable.
func (inv *Invoker) Executable(s *Service) string {
	return filepath.Join(inv.scriptsDir, s.Name.Executable())
}

// Queries the service for its argument template.
//
// The executable runs with [IntrospectionFlag] only. A nonzero exit fails
// with [ErrServiceAPI] carrying the step's standard error.
func (inv *Invoker) API(ctx context.Context, s *Service, pool *variable.Pool) (string, error) {
	cmd, err := inv.command(ctx, s, pool, IntrospectionFlag)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", errors.Wrapf(ErrServiceAPI, "failed to get %s service API (%s)", s.Name, strings.Trim(stderr.String(), "\n"))
		}
		return "", errors.Wrapf(ErrService, "%s: %v", s.Name, err)
	}

	return strings.Trim(stdout.String(), "\n"), nil
}

// Runs the service and returns its merged output and exit code.
//
// A nonzero exit code is not an error; the caller decides. Errors are
// reserved for failures to resolve, introspect, or launch the service.
func (inv *Invoker) Run(ctx context.Context, s *Service, pool *variable.Pool) (*Result, error) {
	if err := inv.CheckPrivilege(s); err != nil {
		return nil, err
	}

	template, err := inv.API(ctx, s, pool)
	if err != nil {
		return nil, err
	}

	args, err := s.ResolveArgs(pool)
	if err != nil {
		return nil, err
	}

	argline := Expand(template, args)
	slog.Debug("service arguments", "service", s.Name.String(), "template", template, "args", argline)

	cmd, err := inv.command(ctx, s, pool, argline)
	if err != nil {
		return nil, err
	}

	var content bytes.Buffer
	var out io.Writer = &content
	if s.WithPrint {
		out = io.MultiWriter(&content, inv.echo)
	}

	// The same writer for both streams makes os/exec share one pipe, so the
	// interleaving of stdout and stderr is preserved.
	cmd.Stdout = out
	cmd.Stderr = out

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.Wrapf(ErrService, "%s: %v", s.Name, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &Result{
		Service:  s,
		Content:  content.String(),
		ExitCode: exitCode,
	}, nil
}

// Builds the command line for a service launch.
//
// The executable and argument string run through /bin/sh so the argument
// string keeps shell semantics. Privileged services run under sudo, which
// reads the credential from stdin.
func (inv *Invoker) command(ctx context.Context, s *Service, pool *variable.Pool, argline string) (*exec.Cmd, error) {
	if err := inv.CheckPrivilege(s); err != nil {
		return nil, err
	}

	exe := inv.Executable(s)
	if info, err := os.Stat(exe); err != nil || info.IsDir() {
		return nil, errors.Wrapf(ErrService, "executable for %s not found at %s", s.Name, exe)
	}

	line := shellQuote(exe)
	if argline != "" {
		line += " " + argline
	}

	var cmd *exec.Cmd
	if s.AsRoot {
		cmd = exec.CommandContext(ctx, inv.sudo, "-S", "-E", "-p", "", variable.Shell, "-c", line)
		cmd.Stdin = strings.NewReader(inv.credential + "\n")
	} else {
		cmd = exec.CommandContext(ctx, variable.Shell, "-c", line)
	}
	cmd.Env = pool.Environ(inv.environ)

	return cmd, nil
}

// Quotes s as a single shell word.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
