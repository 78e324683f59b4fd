package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFinancialKPI(t *testing.T) {
	assert.True(t, IsFinancialKPI("Monthly revenue", ""))
	assert.True(t, IsFinancialKPI("Cut spending", ""))
	assert.True(t, IsFinancialKPI("Team output", "tracks cash flow health"))
	assert.False(t, IsFinancialKPI("Customer satisfaction", "NPS survey score"))
	assert.False(t, IsFinancialKPI("", ""))
}

func TestMatchMetric(t *testing.T) {
	t.Run("Specific phrases win over generic keywords", func(t *testing.T) {
		cases := map[string]string{
			"Gross margin":              MetricGrossMargin,
			"Net profit margin":         MetricNetProfitMarginPct,
			"Margin target":             MetricGrossMarginPct,
			"Operating profit growth":   MetricOperatingProfit,
			"Net profit":                MetricNetProfit,
			"Quarterly profit":          MetricNetProfit,
			"COGS reduction":            MetricCostOfGoodsSold,
			"Operating expense control": MetricOperatingExpenses,
			"Cost reduction":            MetricOperatingExpenses,
			"Tax burden":                MetricTaxes,
			"Monthly sales":             MetricRevenue,
			"Revenue growth":            MetricRevenue,
		}
		for name, want := range cases {
			metric, ok := MatchMetric(name, "")
			require.True(t, ok, "no match for %q", name)
			assert.Equal(t, want, metric, "wrong metric for %q", name)
		}
	})

	t.Run("Name is evaluated before description", func(t *testing.T) {
		metric, ok := MatchMetric("Sales volume", "keep costs low")
		require.True(t, ok)
		assert.Equal(t, MetricRevenue, metric)
	})

	t.Run("Description used when name does not match", func(t *testing.T) {
		metric, ok := MatchMetric("North star", "monthly revenue in RON")
		require.True(t, ok)
		assert.Equal(t, MetricRevenue, metric)
	})

	t.Run("No match is not an error", func(t *testing.T) {
		_, ok := MatchMetric("Customer churn", "retention")
		assert.False(t, ok)
	})
}

func TestDeriveTarget(t *testing.T) {
	policy := DefaultTargetPolicy()
	current := decimal.NewFromInt(1000)

	t.Run("Follows trend for growth metrics", func(t *testing.T) {
		change := decimal.NewFromInt(20)
		target := policy.DeriveTarget(MetricRevenue, current, &change)
		assert.True(t, target.Equal(decimal.NewFromInt(1200)), "got %s", target)
	})

	t.Run("Negative trend followed for growth metrics", func(t *testing.T) {
		change := decimal.NewFromInt(-10)
		target := policy.DeriveTarget(MetricNetProfit, current, &change)
		assert.True(t, target.Equal(decimal.NewFromInt(900)), "got %s", target)
	})

	t.Run("Rising cost metric pushed toward reduction", func(t *testing.T) {
		change := decimal.NewFromInt(15)
		target := policy.DeriveTarget(MetricOperatingExpenses, current, &change)
		assert.True(t, target.Equal(decimal.NewFromInt(900)), "got %s", target)
	})

	t.Run("Falling cost metric follows trend", func(t *testing.T) {
		change := decimal.NewFromInt(-5)
		target := policy.DeriveTarget(MetricCostOfGoodsSold, current, &change)
		assert.True(t, target.Equal(decimal.NewFromInt(950)), "got %s", target)
	})

	t.Run("Flat growth factor without history", func(t *testing.T) {
		target := policy.DeriveTarget(MetricRevenue, current, nil)
		assert.True(t, target.Equal(decimal.NewFromInt(1100)), "got %s", target)
	})

	t.Run("Flat trim factor for costs without history", func(t *testing.T) {
		target := policy.DeriveTarget(MetricOperatingExpenses, current, nil)
		assert.True(t, target.Equal(decimal.NewFromInt(950)), "got %s", target)
	})
}
