package scenario

import (
	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// autoRepairScenario is the one dollar-denominated calculator: the outcome is
// the total financial impact of a surprise repair. Whatever the emergency
// fund cannot absorb is financed at a credit-card style APR for a short
// payoff window, so underfunded customers pay the bill plus carrying cost.
// Outcomes are dollars in [0, RepairImpactCap].
type autoRepairScenario struct {
	tun Tuning
}

func (s *autoRepairScenario) Name() string { return AutoRepair.String() }

func (s *autoRepairScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyExpenses}
}

func (s *autoRepairScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorRepairCosts,
	}
}

func (s *autoRepairScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	repairs := factors[simulation.FactorRepairCosts]

	fund := p.EmergencyFundBalance()

	outcomes := make([]float64, len(repairs))
	for i := range outcomes {
		cost := repairs[i]

		financed := cost - fund
		if financed < 0 {
			financed = 0
		}

		carrying := financed * s.tun.RepairFinanceAPR / 12 * s.tun.RepairPayoffMonths
		outcomes[i] = clamp(cost+carrying, 0, s.tun.RepairImpactCap)
	}
	return outcomes, nil
}

// EvaluateSuccess: the repair counts as absorbed when the fund covers the
// sticker price outright, i.e. no carrying cost was added to the impact.
func (s *autoRepairScenario) EvaluateSuccess(p *profile.Profile, outcomes []float64) []bool {
	fund := p.EmergencyFundBalance()
	success := make([]bool, len(outcomes))
	for i, v := range outcomes {
		success[i] = v <= fund
	}
	return success
}
