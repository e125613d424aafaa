package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"finsim-mcp/internal/profile"
)

// FactorName identifies one stochastic input stream.
type FactorName string

const (
	FactorMarketReturns     FactorName = "market_returns"
	FactorInflationRates    FactorName = "inflation_rates"
	FactorEmergencyExpenses FactorName = "emergency_expenses"
	FactorExpenseMultiplier FactorName = "expense_multiplier"
	FactorIncomeVolatility  FactorName = "income_volatility"
	FactorRateShocks        FactorName = "rate_shocks"
	FactorCrashMagnitudes   FactorName = "crash_magnitudes"
	FactorMedicalBills      FactorName = "medical_bills"
	FactorRentIncreases     FactorName = "rent_increases"
	FactorRepairCosts       FactorName = "repair_costs"
)

// factorOrder fixes a canonical index per factor. Each factor draws from its
// own sub-seeded stream, so the arrays a scenario receives are bit-identical
// for a given (seed, iterations) no matter which other factors were requested
// alongside.
var factorOrder = []FactorName{
	FactorMarketReturns,
	FactorInflationRates,
	FactorEmergencyExpenses,
	FactorExpenseMultiplier,
	FactorIncomeVolatility,
	FactorRateShocks,
	FactorCrashMagnitudes,
	FactorMedicalBills,
	FactorRentIncreases,
	FactorRepairCosts,
}

// RandomFactors maps factor names to per-trial values. Every slice has length
// equal to the iteration count and the key set is exactly what the scenario
// requested.
type RandomFactors map[FactorName][]float64

// Config carries the process-wide simulation parameters. It is read-only once
// constructed and safe to share across concurrent runs.
type Config struct {
	// Monthly market return distribution.
	MarketReturnMean float64
	MarketReturnStd  float64
	// Monthly inflation distribution.
	InflationMean float64
	InflationStd  float64
	// Fraction of trials that see an emergency expense shock, and the shock
	// magnitude as a multiple of the profile's monthly expenses.
	ShockProbability float64
	ShockScale       float64
	// Month-to-month spending variance around 1.0.
	ExpenseMultiplierStd float64
	// Month-to-month income variance around 1.0.
	IncomeVolatilityStd float64
	// Annual interest-rate perturbation applied to loan amortization.
	RateShockStd float64
	// Market-crash drawdown distribution (positive fractions of portfolio).
	CrashMean float64
	CrashStd  float64
	// Medical bill magnitude (exponential mean, dollars).
	MedicalBillMean float64
	// Rent increase distribution (fraction of current rent).
	RentHikeMean float64
	RentHikeStd  float64
	// Auto repair cost (exponential mean and minimum shop visit, dollars).
	RepairCostMean  float64
	RepairCostFloor float64

	// Seed for reproducible runs. Zero selects a time-based seed.
	Seed int64
	// DefaultIterations is used when a caller passes 0.
	DefaultIterations int
}

// DefaultConfig returns the baseline assumptions. Monthly return and
// inflation means correspond to roughly 8.7% and 3.7% annualized.
func DefaultConfig() Config {
	return Config{
		MarketReturnMean:     0.007,
		MarketReturnStd:      0.018,
		InflationMean:        0.003,
		InflationStd:         0.002,
		ShockProbability:     0.15,
		ShockScale:           0.8,
		ExpenseMultiplierStd: 0.05,
		IncomeVolatilityStd:  0.10,
		RateShockStd:         0.005,
		CrashMean:            0.30,
		CrashStd:             0.10,
		MedicalBillMean:      8000,
		RentHikeMean:         0.15,
		RentHikeStd:          0.08,
		RepairCostMean:       1200,
		RepairCostFloor:      150,
		DefaultIterations:    10000,
	}
}

// Generator produces vectorized stochastic inputs. It holds no mutable state
// between calls; reproducibility is a pure function of (seed, iterations).
type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate draws iterations values for each requested factor. A non-zero seed
// makes two calls with the same seed and iterations bit-identical. The profile
// only scales magnitudes (e.g. expense shocks proportional to monthly spend);
// it never changes the draw sequence.
func (g *Generator) Generate(p *profile.Profile, names []FactorName, iterations int, seed int64) (RandomFactors, error) {
	if iterations <= 0 {
		return nil, &InvalidIterationCountError{Iterations: iterations}
	}

	base := seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	factors := make(RandomFactors, len(names))
	for _, name := range names {
		idx := factorIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("unknown random factor %q", name)
		}
		rng := rand.New(rand.NewSource(base + int64(idx+1)*0x9E3779B9))
		factors[name] = g.drawFactor(name, p, iterations, rng)
	}
	return factors, nil
}

func (g *Generator) drawFactor(name FactorName, p *profile.Profile, n int, rng *rand.Rand) []float64 {
	values := make([]float64, n)

	switch name {
	case FactorMarketReturns:
		for i := range values {
			values[i] = g.cfg.MarketReturnMean + g.cfg.MarketReturnStd*rng.NormFloat64()
		}
	case FactorInflationRates:
		for i := range values {
			values[i] = g.cfg.InflationMean + g.cfg.InflationStd*rng.NormFloat64()
		}
	case FactorEmergencyExpenses:
		// Base the shock magnitude on actual spending so a $10k/month
		// household sees proportionally larger emergencies.
		baseExpense := p.MonthlyExpenses
		if baseExpense <= 0 {
			baseExpense = 1000
		}
		for i := range values {
			// Both draws happen every trial to keep the stream position
			// independent of the branch taken.
			u := rng.Float64()
			magnitude := rng.ExpFloat64() * g.cfg.ShockScale * baseExpense
			if u < g.cfg.ShockProbability {
				values[i] = magnitude
			}
		}
	case FactorExpenseMultiplier:
		for i := range values {
			values[i] = clampFloat(1.0+g.cfg.ExpenseMultiplierStd*rng.NormFloat64(), 0.25, 4.0)
		}
	case FactorIncomeVolatility:
		for i := range values {
			values[i] = clampFloat(1.0+g.cfg.IncomeVolatilityStd*rng.NormFloat64(), 0.0, 4.0)
		}
	case FactorRateShocks:
		for i := range values {
			values[i] = g.cfg.RateShockStd * rng.NormFloat64()
		}
	case FactorCrashMagnitudes:
		for i := range values {
			values[i] = clampFloat(g.cfg.CrashMean+g.cfg.CrashStd*rng.NormFloat64(), 0.05, 0.95)
		}
	case FactorMedicalBills:
		for i := range values {
			values[i] = rng.ExpFloat64() * g.cfg.MedicalBillMean
		}
	case FactorRentIncreases:
		for i := range values {
			values[i] = clampFloat(g.cfg.RentHikeMean+g.cfg.RentHikeStd*rng.NormFloat64(), 0.0, 0.5)
		}
	case FactorRepairCosts:
		for i := range values {
			v := rng.ExpFloat64() * g.cfg.RepairCostMean
			if v < g.cfg.RepairCostFloor {
				v = g.cfg.RepairCostFloor
			}
			values[i] = v
		}
	}

	return values
}

func factorIndex(name FactorName) int {
	for i, f := range factorOrder {
		if f == name {
			return i
		}
	}
	return -1
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
