package pipeline

import (
	"fmt"

	"github.com/osforge/osforge/internal/service"
	"github.com/pkg/errors"
)

var (
	ErrPipelineStep = errors.New("pipeline step failed")
)

// Returned when a service exits nonzero. Matches [ErrPipelineStep].
type StepFailure struct {
	Result *service.Result // Captured output and exit code of the failing service.
}

func (f *StepFailure) Error() string {
	return fmt.Sprintf("%v: service %s exited with code %d", ErrPipelineStep, f.Result.Service.Name, f.Result.ExitCode)
}

func (f *StepFailure) Unwrap() error {
	return ErrPipelineStep
}
