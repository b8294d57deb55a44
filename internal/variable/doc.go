// Package variable resolves named values for pipeline services.
//
// A [Pool] maps "$name" tokens to [Variable] values. Registering a variable
// substitutes every "$name" token in its value from the pool in a single
// pass; a token the pool does not hold fails the registration and leaves the
// pool untouched. Command variables are then executed with /bin/sh and their
// raw standard output becomes the value. Variables flagged for export are
// added to the environment of every child process launched with the pool.
//
// Pools are layered by merging: a service works on a clone of the task pool
// with its own variables registered on top, and the result is merged back
// once the service succeeds.
//
// Example usage:
//
//	pool := variable.NewPool()
//	if err := pool.Register(ctx, variable.Variable{Name: "BRANCH", Value: "sisyphus", Export: true}); err != nil {
//	    return err
//	}
//	if err := pool.Register(ctx, variable.Variable{Name: "REF", Value: "altcos/x86_64/$BRANCH/base"}); err != nil {
//	    return err
//	}
//
//	args, err := pool.Substitute("$REF /srv/builds")
//	if err != nil {
//	    return err
//	}
package variable
