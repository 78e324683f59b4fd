package finance

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headerSampleRows bounds the numeric-density scan used when header matching
// leaves the period columns unresolved.
const headerSampleRows = 5

// cumulativeOffset is the distance between a period column and its
// cumulative counterpart in the common trial balance export layout.
const cumulativeOffset = 2

var headerFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeader lowers, trims, folds diacritics ("debitoare" matches
// "Debitoare" and "Debitoáre" alike) and collapses inner whitespace.
func normalizeHeader(cell Cell) string {
	s := strings.ToLower(CellString(cell))
	if folded, _, err := transform.String(headerFolder, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

func containsAny(header string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// hasWord reports whether the header contains the given standalone word,
// e.g. "rulaj d" has word "d" while "denumire" does not.
func hasWord(header, word string) bool {
	for _, field := range strings.Fields(header) {
		if field == word {
			return true
		}
	}
	return false
}

func hasDebitMark(header string) bool {
	return strings.Contains(header, "debit") || hasWord(header, "d")
}

func hasCreditMark(header string) bool {
	return strings.Contains(header, "credit") || hasWord(header, "c")
}

func matchAccountCode(header string) bool {
	return containsAny(header, "cont", "simbol", "account")
}

func matchAccountName(header string) bool {
	return containsAny(header, "denumire", "name", "description")
}

func matchPeriodDebit(header string) bool {
	if strings.Contains(header, "rulaj") && hasDebitMark(header) {
		return true
	}
	return strings.Contains(header, "debit") && strings.Contains(header, "period")
}

func matchPeriodCredit(header string) bool {
	if strings.Contains(header, "rulaj") && hasCreditMark(header) {
		return true
	}
	return strings.Contains(header, "credit") && strings.Contains(header, "period")
}

func matchTotalDebit(header string) bool {
	if strings.Contains(header, "total") && hasDebitMark(header) {
		return true
	}
	return header == "sold final d"
}

func matchTotalCredit(header string) bool {
	if strings.Contains(header, "total") && hasCreditMark(header) {
		return true
	}
	return header == "sold final c"
}

// DetectColumns infers the column layout of a trial balance grid. Header
// keyword matching runs first; unresolved slots fall back to positional
// defaults (code at 0, name at 1), a numeric-density scan of the first data
// rows for the period columns, and a fixed offset for the cumulative
// columns. The layout is returned only when account code, account name, and
// both period columns resolved; otherwise ErrColumnsNotDetected is returned
// and ingestion must abort.
func DetectColumns(grid Grid) (ColumnLayout, error) {
	layout := NewColumnLayout()
	if grid.RowCount() < 2 {
		return layout, ErrEmptyData
	}

	// Step 1: header keyword matching; leftmost match wins per slot. The
	// total matchers run before the period matchers so that "Total rulaj
	// debitoare" style headers land in the cumulative slot.
	for idx, cell := range grid.Header() {
		header := normalizeHeader(cell)
		if header == "" {
			continue
		}
		switch {
		case layout.AccountCode == ColumnUnresolved && matchAccountCode(header):
			layout.AccountCode = idx
		case layout.AccountName == ColumnUnresolved && matchAccountName(header):
			layout.AccountName = idx
		case layout.TotalDebit == ColumnUnresolved && matchTotalDebit(header):
			layout.TotalDebit = idx
		case layout.TotalCredit == ColumnUnresolved && matchTotalCredit(header):
			layout.TotalCredit = idx
		case layout.Debit == ColumnUnresolved && matchPeriodDebit(header):
			layout.Debit = idx
		case layout.Credit == ColumnUnresolved && matchPeriodCredit(header):
			layout.Credit = idx
		}
	}

	// Step 2: positional fallback for the identity columns
	if layout.AccountCode == ColumnUnresolved {
		layout.AccountCode = 0
	}
	if layout.AccountName == ColumnUnresolved {
		layout.AccountName = 1
	}

	// Step 3: numeric-density fallback for the period columns
	if layout.Debit == ColumnUnresolved || layout.Credit == ColumnUnresolved {
		fillPeriodColumnsByDensity(grid, &layout)
	}

	// Step 4: cumulative columns assumed two positions right of the period
	// columns in the common export layout
	if layout.TotalDebit == ColumnUnresolved && layout.Debit != ColumnUnresolved {
		layout.TotalDebit = layout.Debit + cumulativeOffset
	}
	if layout.TotalCredit == ColumnUnresolved && layout.Credit != ColumnUnresolved {
		layout.TotalCredit = layout.Credit + cumulativeOffset
	}

	// Step 5: validation
	if !layout.IsComplete() {
		return NewColumnLayout(), ErrColumnsNotDetected
	}
	return layout, nil
}

// fillPeriodColumnsByDensity ranks columns at index >= 2 by how many of the
// first data rows hold a non-zero numeric value, then assigns the best
// unused candidates to the unresolved period slots.
func fillPeriodColumnsByDensity(grid Grid, layout *ColumnLayout) {
	used := map[int]bool{
		layout.AccountCode: true,
		layout.AccountName: true,
		layout.Debit:       true,
		layout.Credit:      true,
		layout.TotalDebit:  true,
		layout.TotalCredit: true,
	}

	counts := map[int]int{}
	rows := grid.DataRows()
	if len(rows) > headerSampleRows {
		rows = rows[:headerSampleRows]
	}
	for _, row := range rows {
		for idx := 2; idx < len(row); idx++ {
			if used[idx] {
				continue
			}
			if ParseAmount(row[idx]) != 0 {
				counts[idx]++
			}
		}
	}

	candidates := make([]int, 0, len(counts))
	for idx := range counts {
		candidates = append(candidates, idx)
	}
	// descending by density, leftmost column on ties
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	next := 0
	take := func() int {
		if next >= len(candidates) {
			return ColumnUnresolved
		}
		idx := candidates[next]
		next++
		return idx
	}
	if layout.Debit == ColumnUnresolved {
		layout.Debit = take()
	}
	if layout.Credit == ColumnUnresolved {
		layout.Credit = take()
	}
}
