package mcp

import (
	"context"
	"fmt"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/scenario"
	"finsim-mcp/internal/simulation"

	"github.com/rs/zerolog/log"
)

func (s *Server) handleListScenarios() interface{} {
	entries := make([]map[string]interface{}, 0, len(scenario.AllKinds()))
	for _, kind := range scenario.AllKinds() {
		sc, err := scenario.New(kind, s.cfg.Tuning)
		if err != nil {
			continue
		}
		factors := make([]string, 0, len(sc.RequiredFactors()))
		for _, f := range sc.RequiredFactors() {
			factors = append(factors, string(f))
		}
		entries = append(entries, map[string]interface{}{
			"name":            sc.Name(),
			"required_fields": sc.RequiredFields(),
			"random_factors":  factors,
		})
	}
	return map[string]interface{}{"scenarios": entries}
}

// handleProbeProfile characterizes a profile before any simulation: field
// presence, derived balances and the scenarios the data can support.
func (s *Server) handleProbeProfile(path string) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("profile_path is required")
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	p.DeriveCashflow()

	fields := map[string]bool{}
	for _, f := range []string{
		profile.FieldAccounts,
		profile.FieldMonthlyIncome,
		profile.FieldMonthlyExpenses,
		profile.FieldDemographic,
		profile.FieldCreditScore,
		profile.FieldAge,
	} {
		fields[f] = p.FieldPresent(f)
	}

	runnable := []string{}
	blocked := map[string][]string{}
	for _, kind := range scenario.AllKinds() {
		sc, err := scenario.New(kind, s.cfg.Tuning)
		if err != nil {
			continue
		}
		if missing := p.MissingFields(sc.RequiredFields()); len(missing) > 0 {
			blocked[sc.Name()] = missing
		} else {
			runnable = append(runnable, sc.Name())
		}
	}

	return map[string]interface{}{
		"customer_id":  p.CustomerID,
		"demographic":  p.Demographic,
		"fields":       fields,
		"accounts":     len(p.Accounts),
		"transactions": len(p.Transactions),
		"derived": map[string]interface{}{
			"net_worth":              p.NetWorth(),
			"emergency_fund_balance": p.EmergencyFundBalance(),
			"student_loan_balance":   p.StudentLoanBalance(),
			"invested_balance":       p.InvestedBalance(),
			"debt_to_income_ratio":   p.DebtToIncomeRatio(),
		},
		"runnable_scenarios": runnable,
		"blocked_scenarios":  blocked,
	}, nil
}

func (s *Server) handleRunScenario(path, name string, iterations int) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("profile_path is required")
	}
	kind, err := scenario.ParseKind(name)
	if err != nil {
		return nil, err
	}
	sc, err := scenario.New(kind, s.cfg.Tuning)
	if err != nil {
		return nil, err
	}

	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	p.DeriveCashflow()

	res, err := s.engine.RunScenario(sc, p, iterations)
	if err != nil {
		return nil, err
	}
	s.record(p.CustomerID, res)

	return res.FrontendFormat(), nil
}

func (s *Server) handleRunBatch(path string, iterations int) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("profile_path is required")
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	p.DeriveCashflow()

	all, err := scenario.NewAll(s.cfg.Tuning)
	if err != nil {
		return nil, err
	}

	// Pre-filter so one data-poor scenario does not sink the whole batch;
	// the engine itself stays strict.
	runnable := make([]simulation.Scenario, 0, len(all))
	skipped := map[string][]string{}
	for _, sc := range all {
		if missing := p.MissingFields(sc.RequiredFields()); len(missing) > 0 {
			skipped[sc.Name()] = missing
			continue
		}
		runnable = append(runnable, sc)
	}

	results, err := s.engine.RunBatch(context.Background(), runnable, p, iterations)
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		s.record(p.CustomerID, res)
		formatted = append(formatted, res.FrontendFormat())
	}

	return map[string]interface{}{
		"results": formatted,
		"skipped": skipped,
	}, nil
}

// record persists a result without letting recorder failures surface into
// the tool response.
func (s *Server) record(customerID string, res *simulation.Result) {
	if err := s.rec.RecordRun(customerID, res); err != nil {
		log.Warn().Err(err).Str("scenario", res.ScenarioName).Msg("Failed to record run")
	}
}
