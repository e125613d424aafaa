package scenario

import (
	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// gigEconomyScenario stresses income instability. The shared income
// volatility draw is amplified to gig-work levels, and the outcome is how
// many months the customer stays solvent: indefinitely-solvent trials clamp
// to the runway cap, deficit trials burn the emergency fund down. Outcomes
// are months in [0, RunwayCapMonths].
type gigEconomyScenario struct {
	tun Tuning
}

func (s *gigEconomyScenario) Name() string { return GigEconomy.String() }

func (s *gigEconomyScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyIncome, profile.FieldMonthlyExpenses}
}

func (s *gigEconomyScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorIncomeVolatility,
		simulation.FactorExpenseMultiplier,
	}
}

func (s *gigEconomyScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	incomeVol := factors[simulation.FactorIncomeVolatility]
	expenseMult := factors[simulation.FactorExpenseMultiplier]

	fund := p.EmergencyFundBalance()

	outcomes := make([]float64, len(incomeVol))
	for i := range outcomes {
		// Stretch the volatility draw away from 1.0: a 10% swing for a
		// salaried worker is a 25% swing for a gig worker.
		vol := 1 + (incomeVol[i]-1)*s.tun.GigVolatilityBoost
		if vol < 0 {
			vol = 0
		}

		net := p.MonthlyIncome*vol - p.MonthlyExpenses*expenseMult[i]
		if net >= 0 {
			outcomes[i] = s.tun.RunwayCapMonths
			continue
		}

		outcomes[i] = clamp(fund/-net, 0, s.tun.RunwayCapMonths)
	}
	return outcomes, nil
}

func (s *gigEconomyScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return thresholdSuccess(outcomes, s.tun.GigSuccessMonths)
}
