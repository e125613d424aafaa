package scenario

import (
	"math"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// homePurchaseScenario estimates months to save a down payment. Savings
// accumulate from volatile monthly surplus and compound at the market draw,
// using the future-value annuity inversion
//
//	n = ln(1 + D*r/s) / ln(1 + r)
//
// for growth rate r, monthly saving s and remaining gap D. Outcomes are
// months in [0, HomeMaxMonths]; an already-sufficient liquid balance yields
// zero.
type homePurchaseScenario struct {
	tun Tuning
}

func (s *homePurchaseScenario) Name() string { return HomePurchase.String() }

func (s *homePurchaseScenario) RequiredFields() []string {
	return []string{profile.FieldAccounts, profile.FieldMonthlyIncome, profile.FieldMonthlyExpenses}
}

func (s *homePurchaseScenario) RequiredFactors() []simulation.FactorName {
	return []simulation.FactorName{
		simulation.FactorMarketReturns,
		simulation.FactorInflationRates,
		simulation.FactorIncomeVolatility,
		simulation.FactorExpenseMultiplier,
	}
}

func (s *homePurchaseScenario) CalculateOutcome(p *profile.Profile, factors simulation.RandomFactors) ([]float64, error) {
	market := factors[simulation.FactorMarketReturns]
	inflation := factors[simulation.FactorInflationRates]
	incomeVol := factors[simulation.FactorIncomeVolatility]
	expenseMult := factors[simulation.FactorExpenseMultiplier]

	liquid := p.LiquidSavings()

	outcomes := make([]float64, len(market))
	for i := range outcomes {
		// Housing prices drift with the inflation draw over the saving
		// horizon; a single multiplier keeps the model closed-form.
		target := s.tun.HomePrice * (1 + inflation[i]*12) * s.tun.DownPaymentRate

		gap := target - liquid
		if gap <= 0 {
			outcomes[i] = 0
			continue
		}

		saving := p.MonthlyIncome*incomeVol[i] - p.MonthlyExpenses*expenseMult[i]
		if saving <= 0 {
			outcomes[i] = s.tun.HomeMaxMonths
			continue
		}

		growth := market[i]
		var n float64
		if growth <= 1e-6 {
			// Flat or negative growth degenerates to straight division.
			n = gap / saving
		} else {
			n = math.Log(1+gap*growth/saving) / math.Log(1+growth)
		}
		outcomes[i] = clamp(n, 0, s.tun.HomeMaxMonths)
	}
	return outcomes, nil
}

func (s *homePurchaseScenario) EvaluateSuccess(_ *profile.Profile, outcomes []float64) []bool {
	return ceilingSuccess(outcomes, s.tun.HomeSuccessMonths)
}
