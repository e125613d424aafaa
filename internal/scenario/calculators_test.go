package scenario_test

import (
	"math"
	"testing"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/scenario"
	"finsim-mcp/internal/simulation"
)

// repeat builds a constant factor array, letting the deterministic tests pin
// the closed-form math without any randomness in the way.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func build(t *testing.T, kind scenario.Kind) simulation.Scenario {
	t.Helper()
	sc, err := scenario.New(kind, scenario.DefaultTuning())
	if err != nil {
		t.Fatalf("New(%v) error: %v", kind, err)
	}
	return sc
}

func TestEmergencyFund_DeterministicRunway(t *testing.T) {
	sc := build(t, scenario.EmergencyFund)
	p := &profile.Profile{
		Demographic:     profile.Millennial,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 15000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorMarketReturns:     repeat(0, 4),
		simulation.FactorInflationRates:    repeat(0, 4),
		simulation.FactorEmergencyExpenses: repeat(0, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if math.Abs(v-5.0) > 1e-9 {
			t.Errorf("outcome[%d] = %v, want 5.0 (15000/3000)", i, v)
		}
	}

	// 5 months beats the 3-month millennial target.
	for i, ok := range sc.EvaluateSuccess(p, outcomes) {
		if !ok {
			t.Errorf("success[%d] = false, want true", i)
		}
	}
}

func TestEmergencyFund_ZeroFundYieldsZeros(t *testing.T) {
	sc := build(t, scenario.EmergencyFund)
	p := &profile.Profile{
		Demographic:     profile.GenZ,
		MonthlyExpenses: 2000,
		Accounts:        []profile.Account{{Type: profile.Checking, Balance: 900}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorMarketReturns:     repeat(0.01, 8),
		simulation.FactorInflationRates:    repeat(0.003, 8),
		simulation.FactorEmergencyExpenses: repeat(0, 8),
		simulation.FactorExpenseMultiplier: repeat(1, 8),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	if len(outcomes) != 8 {
		t.Fatalf("Got %d outcomes, want 8", len(outcomes))
	}
	for i, v := range outcomes {
		if v != 0 {
			t.Errorf("outcome[%d] = %v, want 0", i, v)
		}
	}
}

func TestStudentLoan_NoDebtYieldsZeros(t *testing.T) {
	sc := build(t, scenario.StudentLoan)
	p := &profile.Profile{
		MonthlyIncome:   5000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 10000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorIncomeVolatility:  repeat(1, 6),
		simulation.FactorExpenseMultiplier: repeat(1, 6),
		simulation.FactorRateShocks:        repeat(0, 6),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 0 {
			t.Errorf("outcome[%d] = %v, want 0 for a debt-free profile", i, v)
		}
	}
}

func TestStudentLoan_PaymentBelowInterestHitsCap(t *testing.T) {
	sc := build(t, scenario.StudentLoan)
	// Deep deficit: the floor payment of $25 never outruns interest on $50k.
	p := &profile.Profile{
		MonthlyIncome:   500,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.StudentLoan, Balance: -50000, InterestRate: 0.055}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorIncomeVolatility:  repeat(1, 5),
		simulation.FactorExpenseMultiplier: repeat(1, 5),
		simulation.FactorRateShocks:        repeat(0, 5),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 360 {
			t.Errorf("outcome[%d] = %v, want the 360-month cap", i, v)
		}
	}
	for i, ok := range sc.EvaluateSuccess(p, outcomes) {
		if ok {
			t.Errorf("success[%d] = true, want false at the cap", i)
		}
	}
}

func TestStudentLoan_AmortizationWindow(t *testing.T) {
	sc := build(t, scenario.StudentLoan)
	// $28k at 5.2% with $1600/month capacity amortizes in about 18 months.
	p := &profile.Profile{
		MonthlyIncome:   5000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.StudentLoan, Balance: -28000, InterestRate: 0.052}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorIncomeVolatility:  repeat(1, 3),
		simulation.FactorExpenseMultiplier: repeat(1, 3),
		simulation.FactorRateShocks:        repeat(0, 3),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v < 17 || v > 19 {
			t.Errorf("outcome[%d] = %v, want roughly 18 months", i, v)
		}
	}
}

func TestMedicalCrisis_CoveredBillRecoversImmediately(t *testing.T) {
	sc := build(t, scenario.MedicalCrisis)
	p := &profile.Profile{
		MonthlyIncome:   6000,
		MonthlyExpenses: 4000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 20000}},
	}

	// Out-of-pocket at 70% coverage is $300, well inside the fund.
	factors := simulation.RandomFactors{
		simulation.FactorMedicalBills:      repeat(1000, 4),
		simulation.FactorIncomeVolatility:  repeat(1, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 0 {
			t.Errorf("outcome[%d] = %v, want 0", i, v)
		}
	}
}

func TestMedicalCrisis_NoSurplusClampsToHorizon(t *testing.T) {
	sc := build(t, scenario.MedicalCrisis)
	p := &profile.Profile{
		MonthlyIncome:   1000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Checking, Balance: 500}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorMedicalBills:      repeat(10000, 4),
		simulation.FactorIncomeVolatility:  repeat(1, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 60 {
			t.Errorf("outcome[%d] = %v, want the 60-month cap", i, v)
		}
	}
}

func TestMarketCrash_NoInvestmentsYieldsZeros(t *testing.T) {
	sc := build(t, scenario.MarketCrash)
	p := &profile.Profile{
		Accounts: []profile.Account{{Type: profile.Savings, Balance: 50000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorCrashMagnitudes: repeat(0.4, 5),
		simulation.FactorMarketReturns:   repeat(0.007, 5),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 0 {
			t.Errorf("outcome[%d] = %v, want 0: cash does not crash", i, v)
		}
	}
}

func TestMarketCrash_RecoveryFormula(t *testing.T) {
	sc := build(t, scenario.MarketCrash)
	p := &profile.Profile{
		Accounts: []profile.Account{{Type: profile.Investment, Balance: 100000}},
	}

	// 30% drawdown recovering at 1%/month: ln(1/0.7)/ln(1.01) ~ 35.85 months.
	factors := simulation.RandomFactors{
		simulation.FactorCrashMagnitudes: repeat(0.30, 3),
		simulation.FactorMarketReturns:   repeat(0.006, 3), // +0.004 drift = 0.01
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	want := math.Log(1/0.7) / math.Log(1.01)
	for i, v := range outcomes {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("outcome[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMarketCrash_NegativeRecoveryClampsToHorizon(t *testing.T) {
	sc := build(t, scenario.MarketCrash)
	p := &profile.Profile{
		Accounts: []profile.Account{{Type: profile.Investment, Balance: 100000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorCrashMagnitudes: repeat(0.30, 3),
		simulation.FactorMarketReturns:   repeat(-0.02, 3),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 120 {
			t.Errorf("outcome[%d] = %v, want the 120-month cap", i, v)
		}
	}
}

func TestHomePurchase_AlreadyFundedYieldsZero(t *testing.T) {
	sc := build(t, scenario.HomePurchase)
	// Liquid savings above the $70k down payment target at zero inflation.
	p := &profile.Profile{
		MonthlyIncome:   8000,
		MonthlyExpenses: 5000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 80000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorMarketReturns:     repeat(0.005, 4),
		simulation.FactorInflationRates:    repeat(0, 4),
		simulation.FactorIncomeVolatility:  repeat(1, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 0 {
			t.Errorf("outcome[%d] = %v, want 0", i, v)
		}
	}
}

func TestHomePurchase_NoSavingCapacityClampsToHorizon(t *testing.T) {
	sc := build(t, scenario.HomePurchase)
	p := &profile.Profile{
		MonthlyIncome:   3000,
		MonthlyExpenses: 3500,
		Accounts:        []profile.Account{{Type: profile.Checking, Balance: 1000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorMarketReturns:     repeat(0.007, 4),
		simulation.FactorInflationRates:    repeat(0.003, 4),
		simulation.FactorIncomeVolatility:  repeat(1, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 240 {
			t.Errorf("outcome[%d] = %v, want the 240-month cap", i, v)
		}
	}
}

func TestGigEconomy_SurplusClampsToRunwayCap(t *testing.T) {
	sc := build(t, scenario.GigEconomy)
	p := &profile.Profile{
		MonthlyIncome:   6000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 5000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorIncomeVolatility:  repeat(1, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 120 {
			t.Errorf("outcome[%d] = %v, want the runway cap in surplus", i, v)
		}
	}
}

func TestGigEconomy_AmplifiedDownswingBurnsFund(t *testing.T) {
	sc := build(t, scenario.GigEconomy)
	p := &profile.Profile{
		MonthlyIncome:   6000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 6000}},
	}

	// A 40% salaried dip becomes a 100% gig dip (1 + (0.6-1)*2.5 = 0):
	// income vanishes and the fund covers 6000/3000 = 2 months.
	factors := simulation.RandomFactors{
		simulation.FactorIncomeVolatility:  repeat(0.6, 4),
		simulation.FactorExpenseMultiplier: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if math.Abs(v-2.0) > 1e-9 {
			t.Errorf("outcome[%d] = %v, want 2.0", i, v)
		}
	}
}

func TestRentHike_DeterministicRunway(t *testing.T) {
	sc := build(t, scenario.RentHike)
	// Rent share 0.35 of $3000 is $1050; a 20% hike adds $210/month against
	// break-even income, so a $2100 fund lasts exactly 10 months.
	p := &profile.Profile{
		MonthlyIncome:   3000,
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 2100}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorRentIncreases:    repeat(0.20, 4),
		simulation.FactorIncomeVolatility: repeat(1, 4),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if math.Abs(v-10.0) > 1e-9 {
			t.Errorf("outcome[%d] = %v, want 10.0", i, v)
		}
	}
}

func TestAutoRepair_FinancingAddsCarryingCost(t *testing.T) {
	sc := build(t, scenario.AutoRepair)
	p := &profile.Profile{
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Savings, Balance: 1000}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorRepairCosts: []float64{500, 2000},
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}

	// $500 fits in the fund: impact is the sticker price.
	if math.Abs(outcomes[0]-500) > 1e-9 {
		t.Errorf("outcomes[0] = %v, want 500", outcomes[0])
	}
	// $2000 leaves $1000 financed at 24% APR over 6 months: +$120 carrying.
	if math.Abs(outcomes[1]-2120) > 1e-9 {
		t.Errorf("outcomes[1] = %v, want 2120", outcomes[1])
	}

	success := sc.EvaluateSuccess(p, outcomes)
	if !success[0] || success[1] {
		t.Errorf("success = %v, want [true false]", success)
	}
}

func TestAutoRepair_ImpactCap(t *testing.T) {
	sc := build(t, scenario.AutoRepair)
	p := &profile.Profile{
		MonthlyExpenses: 3000,
		Accounts:        []profile.Account{{Type: profile.Checking, Balance: 100}},
	}

	factors := simulation.RandomFactors{
		simulation.FactorRepairCosts: repeat(90000, 3),
	}

	outcomes, err := sc.CalculateOutcome(p, factors)
	if err != nil {
		t.Fatalf("CalculateOutcome() error: %v", err)
	}
	for i, v := range outcomes {
		if v != 25000 {
			t.Errorf("outcome[%d] = %v, want the 25000 impact cap", i, v)
		}
	}
}
