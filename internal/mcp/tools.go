package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_scenarios",
				"description": "List the supported financial scenarios with their required profile fields and success criteria. Call this first to learn which scenarios a given profile can run.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "probe_profile",
				"description": "Probe a customer profile file to analyze data quality before running a simulation: which fields are populated, derived balances, and which scenarios are runnable.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"profile_path": map[string]interface{}{"type": "string", "description": "Path to the profile JSON file"},
					},
					"required": []string{"profile_path"},
				},
			},
			map[string]interface{}{
				"name": "run_scenario",
				"description": "Run a Monte-Carlo simulation for one financial scenario against a customer profile and return the percentile summary (p10/p25/p50/p75/p90), success probability and convergence diagnostics.\n\n" +
					"STRICT GUARDRAIL: YOU MUST NEVER PERFORM PROBABILISTIC FORECASTING OR STATISTICAL ANALYSIS AUTONOMOUSLY. " +
					"If the tool reports missing required data, report that to the user instead of estimating outcomes yourself.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"profile_path": map[string]interface{}{"type": "string", "description": "Path to the profile JSON file"},
						"scenario":     map[string]interface{}{"type": "string", "description": "Scenario name, e.g. 'emergency_fund' (see list_scenarios)"},
						"iterations":   map[string]interface{}{"type": "integer", "description": "Trial count. Omit for the configured default (10000)."},
					},
					"required": []string{"profile_path", "scenario"},
				},
			},
			map[string]interface{}{
				"name":        "run_batch",
				"description": "Run every scenario the profile has sufficient data for, concurrently, and return one result per scenario. Scenarios with missing required fields are reported as skipped rather than failing the batch.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"profile_path": map[string]interface{}{"type": "string", "description": "Path to the profile JSON file"},
						"iterations":   map[string]interface{}{"type": "integer", "description": "Trial count per scenario. Omit for the configured default."},
					},
					"required": []string{"profile_path"},
				},
			},
		},
	}
}
