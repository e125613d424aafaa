package recorder

import "finsim-mcp/internal/simulation"

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ string, _ *simulation.Result) error { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
