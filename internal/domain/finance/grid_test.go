package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportingPeriodKind(t *testing.T) {
	t.Run("Single month is monthly", func(t *testing.T) {
		p := ReportingPeriod{Start: date(2026, time.March, 1), End: date(2026, time.March, 31)}
		assert.Equal(t, PeriodMonthly, p.Kind())
	})

	t.Run("Exactly one month boundary is monthly", func(t *testing.T) {
		p := ReportingPeriod{Start: date(2026, time.March, 1), End: date(2026, time.April, 1)}
		assert.Equal(t, PeriodMonthly, p.Kind())
	})

	t.Run("Longer spans are yearly", func(t *testing.T) {
		p := ReportingPeriod{Start: date(2026, time.January, 1), End: date(2026, time.December, 31)}
		assert.Equal(t, PeriodYearly, p.Kind())
	})
}

func TestColumnLayout(t *testing.T) {
	t.Run("Fresh layout is unresolved", func(t *testing.T) {
		l := NewColumnLayout()
		assert.False(t, l.IsComplete())
		assert.False(t, l.HasCumulative())
		assert.Equal(t, ColumnUnresolved, l.AccountCode)
	})

	t.Run("Complete without cumulative", func(t *testing.T) {
		l := ColumnLayout{AccountCode: 0, AccountName: 1, Debit: 2, Credit: 3, TotalDebit: ColumnUnresolved, TotalCredit: ColumnUnresolved}
		assert.True(t, l.IsComplete())
		assert.False(t, l.HasCumulative())
	})
}

func TestFinancialMetricBackfill(t *testing.T) {
	recordID := uuid.New()

	t.Run("Change computed against previous value", func(t *testing.T) {
		m := NewFinancialMetric(recordID, MetricValue{Name: MetricRevenue, Value: decimal.NewFromInt(1200), Unit: UnitCurrency})
		m.BackfillChange(decimal.NewFromInt(1000))

		require.NotNil(t, m.PreviousValue)
		require.NotNil(t, m.ChangePercent)
		assert.True(t, m.ChangePercent.Equal(decimal.NewFromInt(20)), "got %s", m.ChangePercent)
	})

	t.Run("Zero previous value leaves change unset", func(t *testing.T) {
		m := NewFinancialMetric(recordID, MetricValue{Name: MetricRevenue, Value: decimal.NewFromInt(1200), Unit: UnitCurrency})
		m.BackfillChange(decimal.Zero)

		require.NotNil(t, m.PreviousValue)
		assert.Nil(t, m.ChangePercent)
	})
}
