package finance

import (
	"strings"
	"unicode"
)

// Chart-of-accounts prefixes (Romanian standard chart): class 7 holds
// revenue accounts, class 6 holds expenses, with 607-609 as merchandise
// cost and 69x as profit tax.
const (
	revenuePrefix = "7"
	expensePrefix = "6"
	taxPrefix     = "69"
)

var cogsPrefixes = []string{"607", "608", "609"}

// ClassifierConfig carries the tunable business heuristics of the
// classifier. The profit fallback estimates revenue from the 121
// profit-and-loss account when no class-7 rows are present; both the account
// and the multiplier are product guesses kept configurable on purpose.
type ClassifierConfig struct {
	ProfitFallbackAccount    string
	ProfitFallbackMultiplier float64
}

// DefaultClassifierConfig returns the standard heuristics
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ProfitFallbackAccount:    "121",
		ProfitFallbackMultiplier: 2,
	}
}

// AccountEntry is one classified account row
type AccountEntry struct {
	Code  string
	Name  string
	Value float64
}

// Buckets holds the classified account rows of one ingestion run, one bucket
// per accounting category. Built once per run and never persisted directly.
type Buckets struct {
	Revenue          []AccountEntry
	CostOfGoodsSold  []AccountEntry
	OperatingExpense []AccountEntry
	Tax              []AccountEntry

	RevenueTotal float64
	CogsTotal    float64
	OpexTotal    float64
	TaxTotal     float64

	// RevenueEstimated is set when the revenue total came from the profit
	// account fallback rather than from class-7 rows.
	RevenueEstimated bool
}

// cellAt reads a cell defensively: unresolved or out-of-range indices read
// as nil, which ParseAmount degrades to 0.
func cellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// isAccountRow reports whether a trimmed account code cell starts with a
// digit; header repeats, section titles, and footer totals do not.
func isAccountRow(code string) bool {
	if code == "" {
		return false
	}
	return unicode.IsDigit(rune(code[0]))
}

// Classify buckets every account row of the grid by chart-of-accounts
// prefix. Monthly periods read the period (rulaj) columns; yearly periods
// read the cumulative columns when the detector resolved them.
func Classify(grid Grid, layout ColumnLayout, kind PeriodKind, cfg ClassifierConfig) Buckets {
	debitCol, creditCol := layout.Debit, layout.Credit
	if kind == PeriodYearly && layout.HasCumulative() {
		debitCol, creditCol = layout.TotalDebit, layout.TotalCredit
	}

	var b Buckets
	for _, row := range grid.DataRows() {
		code := CellString(cellAt(row, layout.AccountCode))
		if !isAccountRow(code) {
			continue
		}
		name := CellString(cellAt(row, layout.AccountName))
		debit := ParseAmount(cellAt(row, debitCol))
		credit := ParseAmount(cellAt(row, creditCol))

		switch {
		case strings.HasPrefix(code, revenuePrefix):
			if credit != 0 {
				b.Revenue = append(b.Revenue, AccountEntry{Code: code, Name: name, Value: credit})
				b.RevenueTotal += credit
			}
		case strings.HasPrefix(code, expensePrefix):
			entry := AccountEntry{Code: code, Name: name, Value: debit}
			switch {
			case hasAnyPrefix(code, cogsPrefixes):
				b.CostOfGoodsSold = append(b.CostOfGoodsSold, entry)
				b.CogsTotal += debit
			case strings.HasPrefix(code, taxPrefix):
				b.Tax = append(b.Tax, entry)
				b.TaxTotal += debit
			default:
				b.OperatingExpense = append(b.OperatingExpense, entry)
				b.OpexTotal += debit
			}
		}
	}

	// Crude proxy used only when no revenue accounts are present: the 121
	// profit-and-loss account's cumulative debit, doubled.
	if b.RevenueTotal == 0 {
		if profit := findProfitAccountDebit(grid, layout, cfg.ProfitFallbackAccount); profit > 0 {
			b.RevenueTotal = profit * cfg.ProfitFallbackMultiplier
			b.RevenueEstimated = true
		}
	}

	return b
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

func findProfitAccountDebit(grid Grid, layout ColumnLayout, account string) float64 {
	for _, row := range grid.DataRows() {
		if CellString(cellAt(row, layout.AccountCode)) == account {
			return ParseAmount(cellAt(row, layout.TotalDebit))
		}
	}
	return 0
}
