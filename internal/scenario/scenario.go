// Package scenario implements the concrete outcome calculators the engine
// orchestrates. Each scenario is a pure, vectorized mapping from a profile and
// random factor arrays to a bounded outcome distribution.
package scenario

import (
	"fmt"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/simulation"
)

// Kind enumerates the closed set of supported scenarios. Dispatch goes
// through New's exhaustive switch rather than a string-keyed map, so an
// unsupported kind is a startup-time error, not a runtime lookup miss.
type Kind int

const (
	EmergencyFund Kind = iota
	StudentLoan
	MedicalCrisis
	MarketCrash
	HomePurchase
	GigEconomy
	RentHike
	AutoRepair
)

func (k Kind) String() string {
	switch k {
	case EmergencyFund:
		return "emergency_fund"
	case StudentLoan:
		return "student_loan"
	case MedicalCrisis:
		return "medical_crisis"
	case MarketCrash:
		return "market_crash"
	case HomePurchase:
		return "home_purchase"
	case GigEconomy:
		return "gig_economy"
	case RentHike:
		return "rent_hike"
	case AutoRepair:
		return "auto_repair"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AllKinds returns every supported scenario kind in a stable order.
func AllKinds() []Kind {
	return []Kind{
		EmergencyFund,
		StudentLoan,
		MedicalCrisis,
		MarketCrash,
		HomePurchase,
		GigEconomy,
		RentHike,
		AutoRepair,
	}
}

// ParseKind resolves a wire-format scenario name.
func ParseKind(name string) (Kind, error) {
	for _, k := range AllKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown scenario %q", name)
}

// Tuning carries the per-scenario targets and thresholds. Defaults are
// overridable from the YAML assumptions file; the structs are read-only once
// loaded.
type Tuning struct {
	// Emergency fund.
	EmergencyTargetMonths  map[profile.Demographic]float64 `yaml:"emergency_target_months"`
	EmergencyDefaultTarget float64                         `yaml:"emergency_default_target"`
	MarketExposure         float64                         `yaml:"market_exposure"`
	MinMonthlyOutflow      float64                         `yaml:"min_monthly_outflow"`

	// Student loan.
	LoanPaymentShare  float64 `yaml:"loan_payment_share"`
	LoanMinPayment    float64 `yaml:"loan_min_payment"`
	LoanFallbackRate  float64 `yaml:"loan_fallback_rate"`
	LoanMaxMonths     float64 `yaml:"loan_max_months"`
	LoanSuccessMonths float64 `yaml:"loan_success_months"`

	// Medical crisis.
	MedicalCoverageRate  float64 `yaml:"medical_coverage_rate"`
	MedicalMaxMonths     float64 `yaml:"medical_max_months"`
	MedicalSuccessMonths float64 `yaml:"medical_success_months"`
	MedicalMinSurplus    float64 `yaml:"medical_min_surplus"`

	// Market crash.
	CrashRecoveryDrift float64 `yaml:"crash_recovery_drift"`
	CrashMaxMonths     float64 `yaml:"crash_max_months"`
	CrashSuccessMonths float64 `yaml:"crash_success_months"`

	// Home purchase.
	HomePrice         float64 `yaml:"home_price"`
	DownPaymentRate   float64 `yaml:"down_payment_rate"`
	HomeMaxMonths     float64 `yaml:"home_max_months"`
	HomeSuccessMonths float64 `yaml:"home_success_months"`

	// Gig economy.
	GigVolatilityBoost float64 `yaml:"gig_volatility_boost"`
	GigSuccessMonths   float64 `yaml:"gig_success_months"`

	// Rent hike.
	RentShare         float64 `yaml:"rent_share"`
	RentSuccessMonths float64 `yaml:"rent_success_months"`

	// Auto repair.
	RepairFinanceAPR   float64 `yaml:"repair_finance_apr"`
	RepairPayoffMonths float64 `yaml:"repair_payoff_months"`
	RepairImpactCap    float64 `yaml:"repair_impact_cap"`

	// RunwayCapMonths bounds every months-of-runway style outcome.
	RunwayCapMonths float64 `yaml:"runway_cap_months"`
}

// DefaultTuning returns the reference thresholds. Emergency targets follow
// the usual advice curve: younger segments get by with less cushion, single
// earners nearing retirement need more.
func DefaultTuning() Tuning {
	return Tuning{
		EmergencyTargetMonths: map[profile.Demographic]float64{
			profile.GenZ:       3,
			profile.Millennial: 3,
			profile.MidCareer:  6,
			profile.PreRetiree: 6,
			profile.Retiree:    9,
		},
		EmergencyDefaultTarget: 3,
		MarketExposure:         0.25,
		MinMonthlyOutflow:      100,

		LoanPaymentShare:  0.8,
		LoanMinPayment:    25,
		LoanFallbackRate:  0.055,
		LoanMaxMonths:     360,
		LoanSuccessMonths: 120,

		MedicalCoverageRate:  0.70,
		MedicalMaxMonths:     60,
		MedicalSuccessMonths: 12,
		MedicalMinSurplus:    50,

		CrashRecoveryDrift: 0.004,
		CrashMaxMonths:     120,
		CrashSuccessMonths: 36,

		HomePrice:         350000,
		DownPaymentRate:   0.20,
		HomeMaxMonths:     240,
		HomeSuccessMonths: 60,

		GigVolatilityBoost: 2.5,
		GigSuccessMonths:   6,

		RentShare:         0.35,
		RentSuccessMonths: 12,

		RepairFinanceAPR:   0.24,
		RepairPayoffMonths: 6,
		RepairImpactCap:    25000,

		RunwayCapMonths: 120,
	}
}

// New constructs the calculator for a kind. The switch is exhaustive over
// AllKinds; extending the enum without extending this factory is caught by
// the paired test.
func New(kind Kind, tun Tuning) (simulation.Scenario, error) {
	switch kind {
	case EmergencyFund:
		return &emergencyFundScenario{tun: tun}, nil
	case StudentLoan:
		return &studentLoanScenario{tun: tun}, nil
	case MedicalCrisis:
		return &medicalCrisisScenario{tun: tun}, nil
	case MarketCrash:
		return &marketCrashScenario{tun: tun}, nil
	case HomePurchase:
		return &homePurchaseScenario{tun: tun}, nil
	case GigEconomy:
		return &gigEconomyScenario{tun: tun}, nil
	case RentHike:
		return &rentHikeScenario{tun: tun}, nil
	case AutoRepair:
		return &autoRepairScenario{tun: tun}, nil
	default:
		return nil, fmt.Errorf("unknown scenario kind %d", int(kind))
	}
}

// NewAll builds the full scenario set, in AllKinds order.
func NewAll(tun Tuning) ([]simulation.Scenario, error) {
	kinds := AllKinds()
	scenarios := make([]simulation.Scenario, 0, len(kinds))
	for _, k := range kinds {
		sc, err := New(k, tun)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// zeros is the well-defined outcome for holders with nothing at stake in a
// scenario (no debt, no invested assets): a zero array, never an error.
func zeros(n int) []float64 {
	return make([]float64, n)
}

func thresholdSuccess(outcomes []float64, min float64) []bool {
	success := make([]bool, len(outcomes))
	for i, v := range outcomes {
		success[i] = v >= min
	}
	return success
}

func ceilingSuccess(outcomes []float64, max float64) []bool {
	success := make([]bool, len(outcomes))
	for i, v := range outcomes {
		success[i] = v <= max
	}
	return success
}
