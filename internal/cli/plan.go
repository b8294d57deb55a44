package cli

import (
	"context"
	"os"

	"github.com/osforge/osforge/internal/config"
)

// Represents the 'osforge plan' command.
type PlanCmd struct {
	Config string `arg:"" help:"Pipeline document (.yaml, .yml, .json or .hcl)."`
}

// Executes the plan command.
func (c *PlanCmd) Run(ctx context.Context) error {
	p, err := config.ParseFile(c.Config)
	if err != nil {
		return err
	}

	task, err := p.Task()
	if err != nil {
		return err
	}

	return task.DOT(os.Stdout)
}
