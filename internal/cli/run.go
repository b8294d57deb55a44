package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/osforge/osforge/internal/config"
	"github.com/osforge/osforge/internal/metrics"
	"github.com/osforge/osforge/internal/paths"
	"github.com/osforge/osforge/internal/pipeline"
	"github.com/pkg/errors"
)

// Represents the 'osforge run' command.
type RunCmd struct {
	Config      string `arg:"" help:"Pipeline document (.yaml, .yml, .json or .hcl)."`
	Scripts     string `help:"Directory holding the service executables." placeholder:"DIR" type:"path"`
	Metrics     bool   `help:"Write service metrics in Prometheus text format after the run."`
	MetricsFile string `help:"Metrics file location. Implies --metrics. Defaults to the user state directory." placeholder:"PATH" type:"path"`
	Password    string `hidden:"" env:"OSFORGE_PASSWORD" help:"Password for privileged services."`
}

// Executes the run command.
//
// The document is loaded and validated, privileged services are checked for
// a credential, and the services run in order. When a service fails its exit
// code and captured output are printed before the error is returned.
func (c *RunCmd) Run(ctx context.Context) error {
	p, err := config.ParseFile(c.Config)
	if err != nil {
		return err
	}

	task, err := p.Task()
	if err != nil {
		return err
	}

	exec := pipeline.New(task, pipeline.Options{
		Credential: c.Password,
		ScriptsDir: paths.Scripts(c.Scripts),
		Echo:       os.Stdout,
	})

	if err := exec.Preflight(); err != nil {
		return err
	}

	_, err = exec.Run(ctx)

	if path := c.metricsFile(); path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			slog.Warn("failed to write metrics", "path", path, "error", werr)
		}
	}

	var failure *pipeline.StepFailure
	if errors.As(err, &failure) {
		if werr := pipeline.WriteFailure(os.Stdout, failure.Result); werr != nil {
			slog.Warn("failed to print service output", "error", werr)
		}
	}
	return err
}

// Returns the metrics destination, or "" when metrics are not requested.
func (c *RunCmd) metricsFile() string {
	if c.MetricsFile != "" {
		return c.MetricsFile
	}
	if c.Metrics {
		return paths.MetricsFile()
	}
	return ""
}
