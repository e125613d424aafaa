package scenario

import (
	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// medicalCrisisScenario models a surprise medical bill: the uninsured share
// of the bill drains the emergency fund first, and whatever gap remains is
// paid down from monthly surplus. The outcome is months to full recovery in
// [0, MedicalMaxMonths]; a fully covered bill recovers in zero months.
type medicalCrisisScenario struct {
	tun Tuning
}

func (s *medicalCrisisScenario) Name() string { return MedicalCrisis.String() }

func (s *medicalCrisisScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyIncome, profile.FieldMonthlyExpenses}
}

func (s *medicalCrisisScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorMedicalBills,
		simulation.FactorIncomeVolatility,
		simulation.FactorExpenseMultiplier,
	}
}

func (s *medicalCrisisScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	bills := factors[simulation.FactorMedicalBills]
	incomeVol := factors[simulation.FactorIncomeVolatility]
	expenseMult := factors[simulation.FactorExpenseMultiplier]

	fund := p.EmergencyFundBalance()

	outcomes := make([]float64, len(bills))
	for i := range outcomes {
		outOfPocket := bills[i] * (1 - s.tun.MedicalCoverageRate)

		gap := outOfPocket - fund
		if gap <= 0 {
			outcomes[i] = 0
			continue
		}

		surplus := p.MonthlyIncome*incomeVol[i] - p.MonthlyExpenses*expenseMult[i]
		if surplus < s.tun.MedicalMinSurplus {
			// No meaningful surplus: recovery is effectively open-ended,
			// clamp at the horizon instead of dividing toward infinity.
			outcomes[i] = s.tun.MedicalMaxMonths
			continue
		}

		outcomes[i] = clamp(gap/surplus, 0, s.tun.MedicalMaxMonths)
	}
	return outcomes, nil
}

func (s *medicalCrisisScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return ceilingSuccess(outcomes, s.tun.MedicalSuccessMonths)
}
