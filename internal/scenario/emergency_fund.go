package scenario

import (
	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// emergencyFundScenario measures runway: how many months the customer's
// savings cover living expenses once spending variance, inflation drift and
// occasional emergency expense shocks are applied. Outcomes are months in
// [0, RunwayCapMonths].
type emergencyFundScenario struct {
	tun Tuning
}

func (s *emergencyFundScenario) Name() string { return EmergencyFund.String() }

func (s *emergencyFundScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyExpenses, profile.FieldDemographic}
}

func (s *emergencyFundScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorMarketReturns,
		simulation.FactorInflationRates,
		simulation.FactorEmergencyExpenses,
		simulation.FactorExpenseMultiplier,
	}
}

func (s *emergencyFundScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	market := factors[simulation.FactorMarketReturns]
	inflation := factors[simulation.FactorInflationRates]
	shocks := factors[simulation.FactorEmergencyExpenses]
	mult := factors[simulation.FactorExpenseMultiplier]

	fund := p.EmergencyFundBalance()
	if fund == 0 {
		return zeros(len(market)), nil
	}

	outcomes := make([]float64, len(market))
	for i := range outcomes {
		// Only a slice of the fund sits in market-exposed vehicles; the
		// rest is cash and ignores the return draw.
		balance := fund * (1 + market[i]*s.tun.MarketExposure)

		outflow := p.MonthlyExpenses*mult[i]*(1+inflation[i]) + shocks[i]
		if outflow < s.tun.MinMonthlyOutflow {
			outflow = s.tun.MinMonthlyOutflow
		}

		outcomes[i] = clamp(balance/outflow, 0, s.tun.RunwayCapMonths)
	}
	return outcomes, nil
}

// EvaluateSuccess compares runway against the demographic's target months.
func (s *emergencyFundScenario) EvaluateSuccess(p *profile.Profile, outcomes []float64) []bool {
	target, ok := s.tun.EmergencyTargetMonths[p.Demographic]
	if !ok {
		target = s.tun.EmergencyDefaultTarget
	}
	return thresholdSuccess(outcomes, target)
}
