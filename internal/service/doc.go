// Package service invokes external build steps.
//
// Each build step is an executable in the scripts directory, identified by a
// [Name] from a closed set. The orchestrator knows nothing about a step's
// argument syntax. Instead, every step answers an introspection query (the
// executable run with [IntrospectionFlag] and nothing else) with a one-line
// template such as "$branch $storage -w". The service's configured arguments
// are resolved against the variable pool and substituted into the template's
// "$name" placeholders to produce the real argument string.
//
// The step then runs through /bin/sh with the parent environment plus the
// pool's exported variables. Standard output and standard error are merged
// and captured; with printing enabled they are also echoed as they arrive.
// Privileged steps are wrapped with sudo, which reads the credential from
// stdin. A privileged step without a credential fails before any process is
// started.
//
// Example usage:
//
//	inv := service.NewInvoker(service.Config{
//	    ScriptsDir: "/usr/share/osforge/scripts",
//	    Credential: password,
//	    Echo:       os.Stdout,
//	})
//
//	result, err := inv.Run(ctx, &service.Service{
//	    Name: service.Buildsum,
//	    Args: map[string]string{"branch": "$BRANCH", "storage": "$STORAGE"},
//	}, pool)
//	if err != nil {
//	    return err
//	}
//	if result.ExitCode != 0 {
//	    fmt.Print(result.Content)
//	}
package service
