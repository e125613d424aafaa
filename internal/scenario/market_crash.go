package scenario

import (
	"math"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// marketCrashScenario applies a drawdown to market-exposed balances and asks
// how long the portfolio needs to regain its prior peak while compounding at
// a perturbed recovery rate:
//
//	n = ln(1 / (1 - d)) / ln(1 + r)
//
// Outcomes are months in [0, CrashMaxMonths]. Holders with nothing invested
// see a zero array: a crash cannot hurt cash.
type marketCrashScenario struct {
	tun Tuning
}

func (s *marketCrashScenario) Name() string { return MarketCrash.String() }

func (s *marketCrashScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts}
}

func (s *marketCrashScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorCrashMagnitudes,
		simulation.FactorMarketReturns,
	}
}

func (s *marketCrashScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	crashes := factors[simulation.FactorCrashMagnitudes]
	market := factors[simulation.FactorMarketReturns]

	invested := p.InvestedBalance()
	if invested == 0 {
		return zeros(len(crashes)), nil
	}

	outcomes := make([]float64, len(crashes))
	for i := range outcomes {
		drawdown := crashes[i]

		// Post-crash recoveries historically run above the long-term mean;
		// the drift bonus models that, floored so a persistently negative
		// draw clamps at the horizon rather than diverging.
		recovery := market[i] + s.tun.CrashRecoveryDrift
		if recovery < 1e-4 {
			outcomes[i] = s.tun.CrashMaxMonths
			continue
		}

		n := math.Log(1/(1-drawdown)) / math.Log(1+recovery)
		outcomes[i] = clamp(n, 0, s.tun.CrashMaxMonths)
	}
	return outcomes, nil
}

func (s *marketCrashScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return ceilingSuccess(outcomes, s.tun.CrashSuccessMonths)
}
