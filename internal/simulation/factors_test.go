package simulation

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"finsim-mcp/internal/profile"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		CustomerID:      "CUST-001",
		Demographic:     profile.Millennial,
		MonthlyIncome:   5000,
		MonthlyExpenses: 3000,
		Accounts: []profile.Account{
			{Type: profile.Savings, Balance: 15000},
		},
	}
}

func allFactors() []FactorName {
	return []FactorName{
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
}

func TestGenerator_Reproducibility(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()

	first, err := g.Generate(p, allFactors(), 500, 42)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	second, err := g.Generate(p, allFactors(), 500, 42)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Same seed and iterations must produce bit-identical factors")
	}
}

func TestGenerator_SeedIndependentOfRequestedSet(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()

	solo, _ := g.Generate(p, []FactorName{FactorMarketReturns}, 200, 42)
	full, _ := g.Generate(p, allFactors(), 200, 42)

	if !reflect.DeepEqual(solo[FactorMarketReturns], full[FactorMarketReturns]) {
		t.Errorf("A factor's stream must not depend on which other factors were requested")
	}
}

func TestGenerator_DifferentSeedsDiffer(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()

	a, _ := g.Generate(p, []FactorName{FactorMarketReturns}, 100, 1)
	b, _ := g.Generate(p, []FactorName{FactorMarketReturns}, 100, 2)

	if reflect.DeepEqual(a[FactorMarketReturns], b[FactorMarketReturns]) {
		t.Errorf("Different seeds produced identical arrays")
	}
}

func TestGenerator_LengthsAndFiniteness(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()
	iterations := 1000

	factors, err := g.Generate(p, allFactors(), iterations, 7)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(factors) != len(allFactors()) {
		t.Fatalf("Expected %d factor arrays, got %d", len(allFactors()), len(factors))
	}
	for name, values := range factors {
		if len(values) != iterations {
			t.Errorf("%s: length %d, want %d", name, len(values), iterations)
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s[%d] is not finite: %v", name, i, v)
			}
		}
	}
}

func TestGenerator_ShockSparsity(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()

	factors, err := g.Generate(p, []FactorName{FactorEmergencyExpenses}, 20000, 42)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	hit := 0
	for _, v := range factors[FactorEmergencyExpenses] {
		if v > 0 {
			hit++
		}
	}
	frac := float64(hit) / 20000

	// Configured shock probability is 15%; allow generous sampling slack.
	if frac < 0.12 || frac > 0.18 {
		t.Errorf("Shock fraction %.3f outside [0.12, 0.18]", frac)
	}
}

func TestGenerator_InvalidIterations(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	p := testProfile()

	for _, n := range []int{0, -1, -10000} {
		_, err := g.Generate(p, allFactors(), n, 42)
		var invalid *InvalidIterationCountError
		if !errors.As(err, &invalid) {
			t.Errorf("iterations=%d: expected InvalidIterationCountError, got %v", n, err)
		}
	}
}

func TestGenerator_UnknownFactor(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	if _, err := g.Generate(testProfile(), []FactorName{"sunspots"}, 10, 1); err == nil {
		t.Errorf("Expected error for unknown factor name")
	}
}
