// Package pipeline runs a task: an ordered list of services sharing a
// variable pool.
//
// A [Task] is executed in a single pass. Before anything runs, [Executor.Preflight]
// checks that a credential is available for every privileged service; a
// missing credential fails the task before any variable command or service
// is executed. The task variables are then registered, and every service
// that is not skipped runs in declaration order on a clone of the task
// pool with its own variables registered on top. When a service succeeds
// its pool is merged back, so later services see every variable introduced
// by earlier ones. The first service that exits nonzero stops the task with
// a [StepFailure] carrying the captured output.
//
// Each run records a [Report] with one [Step] per service and updates the
// service run metrics.
//
// Example usage:
//
//	exec := pipeline.New(task, pipeline.Options{
//	    ScriptsDir: paths.Scripts(""),
//	    Credential: os.Getenv("OSFORGE_PASSWORD"),
//	})
//	if err := exec.Preflight(); err != nil {
//	    return err
//	}
//	report, err := exec.Run(ctx)
//	var failure *pipeline.StepFailure
//	if errors.As(err, &failure) {
//	    pipeline.WriteFailure(os.Stdout, failure.Result)
//	}
package pipeline
