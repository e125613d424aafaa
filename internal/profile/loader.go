package profile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Load reads a profile from a JSON file and validates its structural
// invariants. The engine never loads profiles itself; this feeds the CLI and
// the MCP tool surface.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	log.Debug().
		Str("customer", p.CustomerID).
		Int("accounts", len(p.Accounts)).
		Int("transactions", len(p.Transactions)).
		Msg("Profile loaded")

	return &p, nil
}

// LoadTransactionsCSV reads a transaction ledger exported as CSV with a
// header row of: date, amount, category, description. Dates are accepted as
// RFC3339 or plain YYYY-MM-DD.
func LoadTransactionsCSV(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transactions: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("transactions csv missing %q column", required)
		}
	}

	var txs []Transaction
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row must not silently truncate the ledger;
			// DeriveCashflow would average over partial data.
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		date, err := parseDate(record[col["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(record[col["amount"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad amount %q", line, record[col["amount"]])
		}

		tx := Transaction{Date: date, Amount: amount}
		if i, ok := col["category"]; ok && i < len(record) {
			tx.Category = strings.TrimSpace(record[i])
		}
		if i, ok := col["description"]; ok && i < len(record) {
			tx.Description = strings.TrimSpace(record[i])
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// DeriveCashflow fills MonthlyIncome and MonthlyExpenses from the attached
// transaction history when the snapshot left them at zero. Averages run over
// the months actually covered by the ledger, so a partial export does not
// dilute the estimate.
func (p *Profile) DeriveCashflow() {
	if len(p.Transactions) == 0 {
		return
	}
	if p.MonthlyIncome > 0 && p.MonthlyExpenses > 0 {
		return
	}

	months := make(map[string]bool)
	var inflow, outflow float64
	for _, tx := range p.Transactions {
		months[tx.Date.Format("2006-01")] = true
		if tx.Amount >= 0 {
			inflow += tx.Amount
		} else {
			outflow += -tx.Amount
		}
	}

	span := float64(len(months))
	if span == 0 {
		return
	}
	if p.MonthlyIncome == 0 {
		p.MonthlyIncome = inflow / span
	}
	if p.MonthlyExpenses == 0 {
		p.MonthlyExpenses = outflow / span
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
