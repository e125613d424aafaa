package simulation

import "math"

// Result is the immutable output contract of a scenario run. Callers (the MCP
// layer here, an HTTP layer elsewhere) own it after RunScenario returns.
type Result struct {
	ScenarioName string `json:"scenario_name"`
	Iterations   int    `json:"iterations"`

	Percentile10 float64 `json:"percentile_10"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile50 float64 `json:"percentile_50"`
	Percentile75 float64 `json:"percentile_75"`
	Percentile90 float64 `json:"percentile_90"`

	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`

	ProbabilitySuccess   float64    `json:"probability_success"`
	ConfidenceInterval95 [2]float64 `json:"confidence_interval_95"`

	ProcessingTimeMs float64        `json:"processing_time_ms"`
	Metadata         map[string]any `json:"metadata"`
}

// FrontendFormat renders the result as the JSON-safe nested mapping the
// consuming layers expect. Non-finite floats become nil so a plain JSON
// encoder never chokes on them; scenario clamping should prevent them from
// arising in the first place.
func (r *Result) FrontendFormat() map[string]any {
	return map[string]any{
		"scenario": r.ScenarioName,
		"results": map[string]any{
			"percentiles": map[string]any{
				"p10": finiteOrNil(r.Percentile10),
				"p25": finiteOrNil(r.Percentile25),
				"p50": finiteOrNil(r.Percentile50),
				"p75": finiteOrNil(r.Percentile75),
				"p90": finiteOrNil(r.Percentile90),
			},
			"statistics": map[string]any{
				"mean":    finiteOrNil(r.Mean),
				"std_dev": finiteOrNil(r.StdDev),
				"min":     finiteOrNil(r.MinValue),
				"max":     finiteOrNil(r.MaxValue),
			},
			"probability_success": finiteOrNil(r.ProbabilitySuccess),
			"confidence_interval_95": []any{
				finiteOrNil(r.ConfidenceInterval95[0]),
				finiteOrNil(r.ConfidenceInterval95[1]),
			},
		},
		"iterations":         r.Iterations,
		"processing_time_ms": finiteOrNil(r.ProcessingTimeMs),
		"metadata":           sanitizeMetadata(r.Metadata),
	}
}

// sanitizeMetadata applies the non-finite rule to metadata values too: a run
// too short for a convergence verdict carries relative_difference = +Inf,
// which must serialize as null like every other non-finite float.
func sanitizeMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		if f, ok := v.(float64); ok {
			out[k] = finiteOrNil(f)
			continue
		}
		out[k] = v
	}
	return out
}

func finiteOrNil(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
