package profile

import (
	"fmt"
	"math"
	"time"
)

// Demographic segments a customer by career stage. Scenario targets (e.g. how
// many months of emergency runway count as "enough") vary by segment.
type Demographic string

const (
	GenZ               Demographic = "gen_z"
	Millennial         Demographic = "millennial"
	MidCareer          Demographic = "mid_career"
	PreRetiree         Demographic = "pre_retiree"
	Retiree            Demographic = "retiree"
	DemographicUnknown Demographic = ""
)

// AccountType classifies an account for derived-balance aggregation.
type AccountType string

const (
	Checking    AccountType = "checking"
	Savings     AccountType = "savings"
	MoneyMarket AccountType = "money_market"
	Investment  AccountType = "investment"
	Retirement  AccountType = "retirement"
	StudentLoan AccountType = "student_loan"
	CreditCard  AccountType = "credit_card"
	AutoLoan    AccountType = "auto_loan"
	Mortgage    AccountType = "mortgage"
)

// Account is a single financial account. Debt accounts carry negative balances.
type Account struct {
	Type         AccountType `json:"type"`
	Name         string      `json:"name,omitempty"`
	Balance      float64     `json:"balance"`
	InterestRate float64     `json:"interest_rate,omitempty"` // annual, e.g. 0.055
}

// Transaction is a single ledger entry. Positive amounts are inflows.
type Transaction struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Profile is a customer's financial snapshot. It is constructed once per
// simulation request and treated as read-only by the engine and all scenario
// calculators.
type Profile struct {
	CustomerID      string        `json:"customer_id"`
	Demographic     Demographic   `json:"demographic"`
	Age             int           `json:"age,omitempty"`
	CreditScore     int           `json:"credit_score,omitempty"`
	MonthlyIncome   float64       `json:"monthly_income"`
	MonthlyExpenses float64       `json:"monthly_expenses"`
	Accounts        []Account     `json:"accounts"`
	Transactions    []Transaction `json:"transactions,omitempty"`
}

// Validate checks the structural invariants that hold for every profile,
// independent of any scenario.
func (p *Profile) Validate() error {
	if p.MonthlyIncome < 0 {
		return fmt.Errorf("monthly_income must be non-negative, got %.2f", p.MonthlyIncome)
	}
	if p.MonthlyExpenses < 0 {
		return fmt.Errorf("monthly_expenses must be non-negative, got %.2f", p.MonthlyExpenses)
	}
	for i, a := range p.Accounts {
		if math.IsNaN(a.Balance) || math.IsInf(a.Balance, 0) {
			return fmt.Errorf("account %d (%s): balance is not finite", i, a.Type)
		}
	}
	return nil
}

// NetWorth sums all account balances, debts included.
func (p *Profile) NetWorth() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		total += a.Balance
	}
	return total
}

// EmergencyFundBalance sums savings-type accounts. Checking is deliberately
// excluded: it models operating cash, not reserves.
func (p *Profile) EmergencyFundBalance() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		if a.Type == Savings || a.Type == MoneyMarket {
			total += a.Balance
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// LiquidSavings sums everything spendable without a sale: checking plus the
// emergency fund.
func (p *Profile) LiquidSavings() float64 {
	total := p.EmergencyFundBalance()
	for _, a := range p.Accounts {
		if a.Type == Checking && a.Balance > 0 {
			total += a.Balance
		}
	}
	return total
}

// InvestedBalance sums market-exposed accounts.
func (p *Profile) InvestedBalance() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		if (a.Type == Investment || a.Type == Retirement) && a.Balance > 0 {
			total += a.Balance
		}
	}
	return total
}

// StudentLoanBalance returns the outstanding student debt as a positive
// magnitude. A profile with no student-loan accounts owes zero.
func (p *Profile) StudentLoanBalance() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		if a.Type == StudentLoan && a.Balance < 0 {
			total += -a.Balance
		}
	}
	return total
}

// TotalDebt returns the magnitude of all negative balances.
func (p *Profile) TotalDebt() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		if a.Balance < 0 {
			total += -a.Balance
		}
	}
	return total
}

// DebtToIncomeRatio relates total debt to annual income. Zero income yields 0
// rather than a division blowup; scenarios that care about income declare it
// as a required field instead.
func (p *Profile) DebtToIncomeRatio() float64 {
	annual := p.MonthlyIncome * 12
	if annual <= 0 {
		return 0
	}
	return p.TotalDebt() / annual
}

// WeightedLoanRate returns the balance-weighted annual interest rate across
// debt accounts of the given type, or fallback when none carry a rate.
func (p *Profile) WeightedLoanRate(t AccountType, fallback float64) float64 {
	var weighted, total float64
	for _, a := range p.Accounts {
		if a.Type == t && a.Balance < 0 && a.InterestRate > 0 {
			weighted += a.InterestRate * -a.Balance
			total += -a.Balance
		}
	}
	if total == 0 {
		return fallback
	}
	return weighted / total
}

// Field names scenarios may declare as required. Presence means "meaningfully
// populated", not merely non-zero-value: an empty accounts slice or an unknown
// demographic count as absent.
const (
	FieldAccounts        = "accounts"
	FieldMonthlyIncome   = "monthly_income"
	FieldMonthlyExpenses = "monthly_expenses"
	FieldDemographic     = "demographic"
	FieldCreditScore     = "credit_score"
	FieldAge             = "age"
)

// FieldPresent reports whether the named field carries usable data.
func (p *Profile) FieldPresent(name string) bool {
	switch name {
	case FieldAccounts:
		return len(p.Accounts) > 0
	case FieldMonthlyIncome:
		return p.MonthlyIncome > 0
	case FieldMonthlyExpenses:
		return p.MonthlyExpenses > 0
	case FieldDemographic:
		return p.Demographic != DemographicUnknown
	case FieldCreditScore:
		return p.CreditScore > 0
	case FieldAge:
		return p.Age > 0
	default:
		return false
	}
}

// MissingFields returns the subset of required that FieldPresent rejects.
func (p *Profile) MissingFields(required []string) []string {
	var missing []string
	for _, f := range required {
		if !p.FieldPresent(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
