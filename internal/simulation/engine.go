package simulation

import (
	"context"
	"time"

	"finsim-mcp/internal/profile"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Scenario maps a profile plus random factors to a length-N outcome array.
// Implementations live in internal/scenario; each declares the profile fields
// and factor streams it needs, clamps its outputs to documented bounds, and
// never produces NaN/Inf.
type Scenario interface {
	// Name is the stable identifier used in results and recordings.
	Name() string
	// RequiredFields lists profile fields that must be populated for the
	// scenario to run meaningfully. Validated before any randomness.
	RequiredFields() []string
	// RequiredFactors lists the stochastic input streams to generate.
	RequiredFactors() []FactorName
	// CalculateOutcome is pure: same profile and factors, same outcomes.
	// A holder with zero qualifying balance yields a zero array, not an
	// error.
	CalculateOutcome(p *profile.Profile, factors RandomFactors) ([]float64, error)
	// EvaluateSuccess applies the scenario's success predicate per trial.
	EvaluateSuccess(p *profile.Profile, outcomes []float64) []bool
}

// Engine orchestrates a simulation run. It is stateless per call: no shared
// mutable state survives between RunScenario invocations, so a single Engine
// can serve concurrent callers.
type Engine struct {
	cfg Config
	gen *Generator
}

// NewEngine wires the engine with its configuration and factor generator.
// Both are injected explicitly; the engine owns no process-wide globals.
func NewEngine(cfg Config, gen *Generator) *Engine {
	return &Engine{cfg: cfg, gen: gen}
}

// RunScenario validates the profile against the scenario's declared
// requirements, generates random factors, computes the outcome distribution
// and reduces it to a Result. iterations == 0 selects the configured default.
// Validation happens before any randomness so structurally insufficient input
// fails fast and cheap. Errors propagate unchanged; there are no retries and
// no fallback paths.
func (e *Engine) RunScenario(sc Scenario, p *profile.Profile, iterations int) (*Result, error) {
	if iterations == 0 {
		iterations = e.cfg.DefaultIterations
	}
	if iterations <= 0 {
		return nil, &InvalidIterationCountError{Iterations: iterations}
	}

	if missing := p.MissingFields(sc.RequiredFields()); len(missing) > 0 {
		return nil, &InsufficientDataError{Scenario: sc.Name(), Missing: missing}
	}

	// Timing covers the compute pipeline only: generation, outcome math and
	// the statistical reduction. Validation and result assembly are excluded.
	start := time.Now()

	factors, err := e.gen.Generate(p, sc.RequiredFactors(), iterations, e.cfg.Seed)
	if err != nil {
		return nil, err
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		return nil, err
	}

	conv := CheckConvergence(outcomes)
	outliers := CountOutliers(outcomes)
	summary := Summarize(outcomes, sc.EvaluateSuccess(p, outcomes))

	elapsed := time.Since(start)

	res := &Result{
		ScenarioName:         sc.Name(),
		Iterations:           iterations,
		Percentile10:         summary.P10,
		Percentile25:         summary.P25,
		Percentile50:         summary.P50,
		Percentile75:         summary.P75,
		Percentile90:         summary.P90,
		Mean:                 summary.Mean,
		StdDev:               summary.StdDev,
		MinValue:             summary.Min,
		MaxValue:             summary.Max,
		ProbabilitySuccess:   summary.ProbabilitySuccess,
		ConfidenceInterval95: summary.CI95,
		ProcessingTimeMs:     float64(elapsed.Microseconds()) / 1000.0,
		Metadata: map[string]any{
			"convergence_achieved": conv.Converged,
			"relative_difference":  conv.RelativeDifference,
			"outliers_detected":    outliers,
			"distribution_type":    classifyDistribution(outcomes, summary),
		},
	}

	log.Debug().
		Str("scenario", sc.Name()).
		Int("iterations", iterations).
		Float64("p50", res.Percentile50).
		Float64("probability_success", res.ProbabilitySuccess).
		Bool("converged", conv.Converged).
		Dur("elapsed", elapsed).
		Msg("Scenario run complete")

	return res, nil
}

// RunBatch executes several scenarios concurrently against the same profile.
// Scenario runs are pure and share nothing mutable, so they parallelize
// safely. Results preserve the input order; the first error cancels the rest.
func (e *Engine) RunBatch(ctx context.Context, scenarios []Scenario, p *profile.Profile, iterations int) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.RunScenario(sc, p, iterations)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
