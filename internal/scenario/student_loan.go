package scenario

import (
	"math"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// studentLoanScenario estimates months to pay off student debt under the
// closed-form amortization identity
//
//	n = -ln(1 - r*P/M) / ln(1 + r)
//
// with the monthly payment capacity M and the rate r perturbed per trial.
// When the payment does not cover accruing interest (M <= r*P) the horizon
// cap is returned instead of the -Inf/NaN the formula would produce.
// Outcomes are months in [0, LoanMaxMonths].
type studentLoanScenario struct {
	tun Tuning
}

func (s *studentLoanScenario) Name() string { return StudentLoan.String() }

func (s *studentLoanScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyIncome, profile.FieldMonthlyExpenses}
}

func (s *studentLoanScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorIncomeVolatility,
		simulation.FactorExpenseMultiplier,
		simulation.FactorRateShocks,
	}
}

func (s *studentLoanScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	incomeVol := factors[simulation.FactorIncomeVolatility]
	expenseMult := factors[simulation.FactorExpenseMultiplier]
	rateShocks := factors[simulation.FactorRateShocks]

	principal := p.StudentLoanBalance()
	if principal == 0 {
		// Debt-free borrowers get a well-defined zero outcome, not an error.
		return zeros(len(incomeVol)), nil
	}

	annualRate := p.WeightedLoanRate(profile.StudentLoan, s.tun.LoanFallbackRate)

	outcomes := make([]float64, len(incomeVol))
	for i := range outcomes {
		r := (annualRate + rateShocks[i]) / 12
		if r < 1e-6 {
			r = 1e-6
		}

		disposable := p.MonthlyIncome*incomeVol[i] - p.MonthlyExpenses*expenseMult[i]
		payment := disposable * s.tun.LoanPaymentShare
		if payment < s.tun.LoanMinPayment {
			payment = s.tun.LoanMinPayment
		}

		if payment <= r*principal {
			// Interest outruns the payment; the loan never amortizes.
			outcomes[i] = s.tun.LoanMaxMonths
			continue
		}

		n := -math.Log(1-r*principal/payment) / math.Log(1+r)
		outcomes[i] = clamp(n, 0, s.tun.LoanMaxMonths)
	}
	return outcomes, nil
}

func (s *studentLoanScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return ceilingSuccess(outcomes, s.tun.LoanSuccessMonths)
}
