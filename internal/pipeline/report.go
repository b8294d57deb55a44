package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/osforge/osforge/internal/service"
	"github.com/osforge/osforge/internal/variable"
)

// Lifecycle of a step.
type StepState string

const (
	StepPending   StepState = "pending"
	StepSucceeded StepState = "succeeded"
	StepFailed    StepState = "failed"
	StepSkipped   StepState = "skipped"
)

// Final state of a task.
type TaskState string

const (
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskAborted   TaskState = "aborted"
)

// Execution record of one service.
type Step struct {
	Service  *service.Service // Declared service.
	State    StepState        // Outcome, or pending if never reached.
	ExitCode int              // Exit code of the real invocation.
	Duration time.Duration    // Time spent in the real invocation.
	Result   *service.Result  // Captured output, nil unless the service ran.
}

// Execution record of a task.
type Report struct {
	State TaskState      // Completed or aborted.
	Steps []*Step        // One step per declared service, in order.
	Pool  *variable.Pool // Task pool after the last step, nil if variables failed.
}

func newReport(services []*service.Service) *Report {
	r := &Report{State: TaskRunning, Steps: make([]*Step, len(services))}
	for i, s := range services {
		r.Steps[i] = &Step{Service: s, State: StepPending}
	}
	return r
}

func (r *Report) abort() {
	r.State = TaskAborted
}

// Returns the step that failed, or nil.
func (r *Report) Failed() *Step {
	for _, s := range r.Steps {
		if s.State == StepFailed {
			return s
		}
	}
	return nil
}

// Writes the exit code and captured output of a failed service.
//
//	returncode: 1
//	↓ output ↓
//	<captured output>
func WriteFailure(w io.Writer, result *service.Result) error {
	_, err := fmt.Fprintf(w, "\nreturncode: %d\n↓ output ↓\n%s\n", result.ExitCode, result.Content)
	return err
}

// Returns output without trailing newlines.
func trimOutput(s string) string {
	return strings.TrimRight(s, "\r\n")
}
