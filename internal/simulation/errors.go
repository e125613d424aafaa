package simulation

import (
	"fmt"
	"strings"
)

// InsufficientDataError reports profile fields a scenario declared as
// required but the supplied profile does not carry. It is raised before any
// random factor is generated and is never retried or recovered internally;
// translation to a transport-level error is the caller's job.
type InsufficientDataError struct {
	Scenario string
	Missing  []string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("missing required data for scenario %s: %s", e.Scenario, strings.Join(e.Missing, ", "))
}

// InvalidIterationCountError reports a non-positive trial count.
type InvalidIterationCountError struct {
	Iterations int
}

func (e *InvalidIterationCountError) Error() string {
	return fmt.Sprintf("iteration count must be positive, got %d", e.Iterations)
}
