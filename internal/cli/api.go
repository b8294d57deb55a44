package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// Argument templates answered to the introspection flag.
const (
	BuildsumAPI = "$branch $storage -w"
	PkgdiffAPI  = "$stream $repo_root $commit -w"
)

// Prints the template and exits before positional arguments are validated.
func printAPI(ctx *kong.Context, template string) error {
	fmt.Fprintln(ctx.Stdout, template)
	ctx.Exit(0)
	return nil
}

// Introspection flag of the buildsum command.
type buildsumAPIFlag bool

func (buildsumAPIFlag) BeforeReset(ctx *kong.Context) error {
	return printAPI(ctx, BuildsumAPI)
}

// Introspection flag of the pkgdiff command.
type pkgdiffAPIFlag bool

func (pkgdiffAPIFlag) BeforeReset(ctx *kong.Context) error {
	return printAPI(ctx, PkgdiffAPI)
}
