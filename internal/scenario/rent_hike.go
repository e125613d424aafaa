package scenario

import (
	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// rentHikeScenario raises the housing share of expenses by a random hike and
// measures how many months the new budget is sustainable before savings run
// out. Budgets that stay in surplus clamp to the runway cap. Outcomes are
// months in [0, RunwayCapMonths].
type rentHikeScenario struct {
	tun Tuning
}

func (s *rentHikeScenario) Name() string { return RentHike.String() }

func (s *rentHikeScenario) RequiredFields() []string {
	return []string{profile.FieldMonthlyIncome, profile.FieldMonthlyExpenses}
}

func (s *rentHikeScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorRentIncreases,
		simulation.FactorIncomeVolatility,
	}
}

func (s *rentHikeScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	hikes := factors[simulation.FactorRentIncreases]
	incomeVol := factors[simulation.FactorIncomeVolatility]

	rent := p.MonthlyExpenses * s.tun.RentShare
	fund := p.EmergencyFundBalance()

	outcomes := make([]float64, len(hikes))
	for i := range outcomes {
		newExpenses := p.MonthlyExpenses + rent*hikes[i]
		net := p.MonthlyIncome*incomeVol[i] - newExpenses

		if net >= 0 {
			outcomes[i] = s.tun.RunwayCapMonths
			continue
		}

		outcomes[i] = clamp(fund/-net, 0, s.tun.RunwayCapMonths)
	}
	return outcomes, nil
}

func (s *rentHikeScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return thresholdSuccess(outcomes, s.tun.RentSuccessMonths)
}
