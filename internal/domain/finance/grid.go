// Package finance implements the financial statement ingestion engine: locale
// numeric parsing, column structure detection over loosely-formatted trial
// balance exports, account classification and derived metrics, and the
// keyword rules binding financial KPIs to those metrics.
package finance

import "time"

// Cell is a raw spreadsheet cell value: string, float64, int, nil, or
// whatever the reader produced. The engine never trusts the type and always
// re-parses through ParseAmount.
type Cell = any

// Grid is an immutable 2-D spreadsheet snapshot. The first row is assumed to
// be a header; the remaining rows are data.
type Grid [][]Cell

// RowCount returns the number of rows including the header
func (g Grid) RowCount() int {
	return len(g)
}

// DataRows returns the rows following the header
func (g Grid) DataRows() [][]Cell {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// Header returns the header row, or nil for an empty grid
func (g Grid) Header() []Cell {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// PeriodKind classifies a reporting period as monthly or yearly. It decides
// whether the metric calculator reads the period (rulaj) columns or the
// cumulative (total) columns.
type PeriodKind string

const (
	PeriodMonthly PeriodKind = "MONTHLY"
	PeriodYearly  PeriodKind = "YEARLY"
)

// String returns the string representation
func (k PeriodKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a valid PeriodKind
func (k PeriodKind) IsValid() bool {
	return k == PeriodMonthly || k == PeriodYearly
}

// ReportingPeriod is the date span an uploaded statement covers
type ReportingPeriod struct {
	Start time.Time
	End   time.Time
}

// Kind derives the period kind from the span: anything within one calendar
// month of the start is monthly, everything longer is yearly.
func (p ReportingPeriod) Kind() PeriodKind {
	if !p.End.After(p.Start.AddDate(0, 1, 0)) {
		return PeriodMonthly
	}
	return PeriodYearly
}

// ColumnUnresolved marks a column slot the detector could not resolve
const ColumnUnresolved = -1

// ColumnLayout holds the detected column indices of a trial balance export.
// Each index is 0-based or ColumnUnresolved.
type ColumnLayout struct {
	AccountCode int
	AccountName int
	Debit       int
	Credit      int
	TotalDebit  int
	TotalCredit int
}

// NewColumnLayout returns a layout with every slot unresolved
func NewColumnLayout() ColumnLayout {
	return ColumnLayout{
		AccountCode: ColumnUnresolved,
		AccountName: ColumnUnresolved,
		Debit:       ColumnUnresolved,
		Credit:      ColumnUnresolved,
		TotalDebit:  ColumnUnresolved,
		TotalCredit: ColumnUnresolved,
	}
}

// IsComplete reports whether the layout satisfies the detection contract:
// account code, account name, and both period columns resolved.
func (l ColumnLayout) IsComplete() bool {
	return l.AccountCode != ColumnUnresolved &&
		l.AccountName != ColumnUnresolved &&
		l.Debit != ColumnUnresolved &&
		l.Credit != ColumnUnresolved
}

// HasCumulative reports whether both cumulative columns resolved
func (l ColumnLayout) HasCumulative() bool {
	return l.TotalDebit != ColumnUnresolved && l.TotalCredit != ColumnUnresolved
}
