package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/osforge/osforge/internal/metrics"
	"github.com/osforge/osforge/internal/service"
	"github.com/osforge/osforge/internal/variable"
	"github.com/pkg/errors"
)

// Ordered list of services and the variables they share.
type Task struct {
	Variables []variable.Variable // Registered before the first service runs.
	Services  []*service.Service  // Executed in order.
	Policy    variable.Policy     // Handling of failing command variables.
}

// Controls task execution.
type Options struct {
	Credential string    // Password for privileged services. Empty means none.
	ScriptsDir string    // Directory holding the service executables.
	Environ    []string  // Parent environment. Nil uses the process environment.
	Echo       io.Writer // Destination for live service output. Nil uses os.Stdout.
	Sudo       string    // Privilege escalation command. Empty uses sudo.
}

// Runs a [Task].
type Executor struct {
	task    *Task
	opts    Options
	invoker *service.Invoker
}

// Creates a new [Executor].
func New(task *Task, opts Options) *Executor {
	return &Executor{
		task: task,
		opts: opts,
		invoker: service.NewInvoker(service.Config{
			ScriptsDir: opts.ScriptsDir,
			Credential: opts.Credential,
			Environ:    opts.Environ,
			Echo:       opts.Echo,
			Sudo:       opts.Sudo,
		}),
	}
}

// Returns an error if any privileged service that is not skipped lacks a
// credential.
func (e *Executor) Preflight() error {
	for _, s := range e.task.Services {
		if s.Skip {
			continue
		}
		if err := e.invoker.CheckPrivilege(s); err != nil {
			return err
		}
	}
	return nil
}

// Executes the task.
//
// The report is returned even on failure and records every step reached.
// A service exiting nonzero fails with a [*StepFailure]; any other error
// stops the task before the offending service is launched.
func (e *Executor) Run(ctx context.Context) (*Report, error) {
	report := newReport(e.task.Services)

	metrics.LastTaskStart.SetToCurrentTime()
	defer metrics.LastTaskEnd.SetToCurrentTime()

	if err := e.Preflight(); err != nil {
		report.abort()
		return report, err
	}

	pool := variable.NewPool(variable.WithPolicy(e.task.Policy), e.environ())
	for _, v := range e.task.Variables {
		if err := pool.Register(ctx, v); err != nil {
			report.abort()
			return report, err
		}
	}
	report.Pool = pool

	for _, step := range report.Steps {
		if err := e.runStep(ctx, step, pool); err != nil {
			report.abort()
			return report, err
		}
	}

	report.State = TaskCompleted
	slog.Info("task completed", "services", len(report.Steps))
	return report, nil
}

// Runs one service and records the outcome in step.
func (e *Executor) runStep(ctx context.Context, step *Step, pool *variable.Pool) error {
	s := step.Service
	name := s.Name.String()

	if s.Skip {
		step.State = StepSkipped
		metrics.ServiceRuns.WithLabelValues(name, metrics.OutcomeSkipped).Inc()
		slog.Debug("service skipped", "service", name)
		return nil
	}

	slog.Info("service started", "service", name)

	local := pool.Clone()
	for _, v := range s.Variables {
		if err := local.Register(ctx, v); err != nil {
			step.State = StepFailed
			metrics.ServiceRuns.WithLabelValues(name, metrics.OutcomeError).Inc()
			return errors.Wrapf(err, "service %s", name)
		}
	}

	start := time.Now()
	result, err := e.invoker.Run(ctx, s, local)
	step.Duration = time.Since(start)
	metrics.ServiceDuration.WithLabelValues(name).Observe(step.Duration.Seconds())

	if err != nil {
		step.State = StepFailed
		metrics.ServiceRuns.WithLabelValues(name, metrics.OutcomeError).Inc()
		return err
	}

	step.Result = result
	step.ExitCode = result.ExitCode

	if !result.Success() {
		step.State = StepFailed
		metrics.ServiceRuns.WithLabelValues(name, metrics.OutcomeFailed).Inc()
		slog.Error("service failed", "service", name, "exit_code", result.ExitCode)
		return &StepFailure{Result: result}
	}

	if s.Capture != "" {
		local.Set(variable.Variable{Name: s.Capture, Value: trimOutput(result.Content)})
	}
	pool.Merge(local)

	step.State = StepSucceeded
	metrics.ServiceRuns.WithLabelValues(name, metrics.OutcomeSucceeded).Inc()
	slog.Info("service finished", "service", name, "duration", step.Duration)
	return nil
}

// Returns the pool option carrying the configured parent environment.
func (e *Executor) environ() variable.Option {
	if e.opts.Environ == nil {
		return func(*variable.Pool) {}
	}
	return variable.WithEnviron(e.opts.Environ)
}
