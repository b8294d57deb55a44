package variable

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Shell used to run command variables.
const Shell = "/bin/sh"

// Runs a command variable and returns its raw standard output.
//
// The command sees the pool's base environment plus the current export view.
// A command that cannot be started always fails. A nonzero exit fails only
// under [Strict]; under [Lenient] the captured output is kept.
func (p *Pool) runCommand(ctx context.Context, name, command string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, Shell, "-c", command)
	cmd.Env = p.Environ(p.environ)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running variable command", "name", name, "command", command)

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return "", errors.Wrapf(ErrCommandFailed, "variable %q: %v", name, err)
	}

	diagnostic := strings.TrimSpace(stderr.String())
	if p.policy == Strict {
		return "", errors.Wrapf(ErrCommandFailed, "variable %q: exit code %d (%s)", name, exitErr.ExitCode(), diagnostic)
	}

	slog.Warn("variable command exited nonzero, keeping its output",
		"name", name,
		"exit_code", exitErr.ExitCode(),
		"stderr", diagnostic,
	)
	return stdout.String(), nil
}
