package cli

import (
	"context"
	"fmt"

	"github.com/osforge/osforge/internal"
)

// Represents the 'osforge version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
