// Package recorder persists completed simulation runs for later analysis.
// The engine never touches it; the MCP/CLI layer records results after they
// are returned, so recording failures can never alter simulation semantics.
package recorder

import "finsim-mcp/internal/simulation"

// Recorder persists simulation results.
type Recorder interface {
	RecordRun(customerID string, res *simulation.Result) error
	Close() error
}
