package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// financialKeywords flag a KPI as financial when any of them appears in its
// name or description.
var financialKeywords = []string{
	"revenue", "sales", "profit", "margin", "cost", "expense", "income",
	"earnings", "financial", "price", "roi", "return", "investment",
	"cash", "flow", "budget", "spending", "funding",
}

// BindingRule maps KPI wording to a canonical metric name
type BindingRule struct {
	Keywords []string
	Metric   string
}

// bindingRules is the ordered keyword-to-metric table. First match wins, so
// specific phrases must precede the generic ones ("operating profit" before
// "profit", "net margin" before "margin").
var bindingRules = []BindingRule{
	{Keywords: []string{"gross margin %", "gross margin percentage"}, Metric: MetricGrossMarginPct},
	{Keywords: []string{"gross margin"}, Metric: MetricGrossMargin},
	{Keywords: []string{"net margin", "net profit margin", "profit margin"}, Metric: MetricNetProfitMarginPct},
	{Keywords: []string{"margin"}, Metric: MetricGrossMarginPct},
	{Keywords: []string{"cost of goods", "cogs", "purchase cost"}, Metric: MetricCostOfGoodsSold},
	{Keywords: []string{"operating expense", "opex", "overhead", "spending", "budget"}, Metric: MetricOperatingExpenses},
	{Keywords: []string{"operating profit", "ebit"}, Metric: MetricOperatingProfit},
	{Keywords: []string{"tax"}, Metric: MetricTaxes},
	{Keywords: []string{"net profit", "net income", "bottom line"}, Metric: MetricNetProfit},
	{Keywords: []string{"profit", "earnings"}, Metric: MetricNetProfit},
	{Keywords: []string{"expense", "cost"}, Metric: MetricOperatingExpenses},
	{Keywords: []string{"revenue", "sales", "turnover", "income"}, Metric: MetricRevenue},
}

// BindingRules returns the ordered keyword-to-metric table. Exposed so the
// matching rules can be inspected and tested independently of persistence.
func BindingRules() []BindingRule {
	return bindingRules
}

// IsFinancialKPI reports whether a KPI's wording marks it as financial
func IsFinancialKPI(name, description string) bool {
	text := strings.ToLower(name + " " + description)
	for _, kw := range financialKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MatchMetric resolves a KPI to exactly one canonical metric name. The name
// text is evaluated first against every rule in order; only when no rule
// matches the name is the description evaluated. Returns false when the KPI
// falls outside the canonical metric set; the binder silently skips it.
func MatchMetric(name, description string) (string, bool) {
	if metric, ok := matchRules(strings.ToLower(name)); ok {
		return metric, true
	}
	return matchRules(strings.ToLower(description))
}

func matchRules(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, rule := range bindingRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Metric, true
			}
		}
	}
	return "", false
}

// TargetPolicy carries the auto-target derivation factors. All three are
// unvalidated product heuristics kept configurable on purpose.
type TargetPolicy struct {
	// GrowthFactor applies to growth-type metrics with no prior history
	GrowthFactor float64
	// CostTrimFactor applies to cost-type metrics with no prior history
	CostTrimFactor float64
	// CostReductionFactor applies to cost-type metrics that increased,
	// pushing the target toward reduction instead of following the trend
	CostReductionFactor float64
}

// DefaultTargetPolicy returns the standard factors
func DefaultTargetPolicy() TargetPolicy {
	return TargetPolicy{
		GrowthFactor:        1.10,
		CostTrimFactor:      0.95,
		CostReductionFactor: 0.9,
	}
}

// IsCostMetric reports whether a metric tracks something that should shrink
func IsCostMetric(name string) bool {
	text := strings.ToLower(name)
	return strings.Contains(text, "cost") || strings.Contains(text, "expense")
}

// DeriveTarget computes an auto-derived target for a KPI bound to the named
// metric. When the metric has a percentage change versus the prior record,
// the target follows that trend, except that cost-type metrics which
// increased get pushed toward reduction. Without history the flat factors
// apply.
func (p TargetPolicy) DeriveTarget(metricName string, current decimal.Decimal, changePct *decimal.Decimal) decimal.Decimal {
	cost := IsCostMetric(metricName)
	if changePct != nil {
		if cost && changePct.IsPositive() {
			return current.Mul(decimal.NewFromFloat(p.CostReductionFactor))
		}
		factor := decimal.NewFromInt(1).Add(changePct.Div(decimal.NewFromInt(100)))
		return current.Mul(factor)
	}
	if cost {
		return current.Mul(decimal.NewFromFloat(p.CostTrimFactor))
	}
	return current.Mul(decimal.NewFromFloat(p.GrowthFactor))
}
