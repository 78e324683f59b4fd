package finance

import (
	"time"

	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Canonical metric names derived from every ingested statement
const (
	MetricRevenue            = "Revenue"
	MetricCostOfGoodsSold    = "Cost of Goods Sold"
	MetricGrossMargin        = "Gross Margin"
	MetricGrossMarginPct     = "Gross Margin Percentage"
	MetricOperatingExpenses  = "Operating Expenses"
	MetricOperatingProfit    = "Operating Profit"
	MetricTaxes              = "Taxes"
	MetricNetProfit          = "Net Profit"
	MetricNetProfitMarginPct = "Net Profit Margin"
)

// Metric units
const (
	UnitCurrency = "RON"
	UnitPercent  = "%"
)

// MetricValue is one derived metric before persistence
type MetricValue struct {
	Name  string
	Value decimal.Decimal
	Unit  string
}

// CalculateMetrics derives the fixed metric set from classified buckets.
// Percentage metrics guard against zero revenue by reporting 0.
func CalculateMetrics(b Buckets) []MetricValue {
	revenue := b.RevenueTotal
	cogs := b.CogsTotal
	grossMargin := revenue - cogs
	opex := b.OpexTotal
	operatingProfit := grossMargin - opex
	taxes := b.TaxTotal
	netProfit := operatingProfit - taxes

	grossMarginPct := 0.0
	netProfitMarginPct := 0.0
	if revenue != 0 {
		grossMarginPct = grossMargin / revenue * 100
		netProfitMarginPct = netProfit / revenue * 100
	}

	return []MetricValue{
		{Name: MetricRevenue, Value: decimal.NewFromFloat(revenue), Unit: UnitCurrency},
		{Name: MetricCostOfGoodsSold, Value: decimal.NewFromFloat(cogs), Unit: UnitCurrency},
		{Name: MetricGrossMargin, Value: decimal.NewFromFloat(grossMargin), Unit: UnitCurrency},
		{Name: MetricGrossMarginPct, Value: decimal.NewFromFloat(grossMarginPct), Unit: UnitPercent},
		{Name: MetricOperatingExpenses, Value: decimal.NewFromFloat(opex), Unit: UnitCurrency},
		{Name: MetricOperatingProfit, Value: decimal.NewFromFloat(operatingProfit), Unit: UnitCurrency},
		{Name: MetricTaxes, Value: decimal.NewFromFloat(taxes), Unit: UnitCurrency},
		{Name: MetricNetProfit, Value: decimal.NewFromFloat(netProfit), Unit: UnitCurrency},
		{Name: MetricNetProfitMarginPct, Value: decimal.NewFromFloat(netProfitMarginPct), Unit: UnitPercent},
	}
}

// FinancialRecord represents one ingested statement upload for a period
type FinancialRecord struct {
	shared.BaseEntity
	OwnerID     uuid.UUID
	FileName    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Kind        PeriodKind
}

// NewFinancialRecord creates a record for an uploaded statement
func NewFinancialRecord(ownerID uuid.UUID, fileName string, period ReportingPeriod) *FinancialRecord {
	return &FinancialRecord{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		FileName:    fileName,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Kind:        period.Kind(),
	}
}

// FinancialMetric is a persisted derived metric owned by a FinancialRecord.
// Immutable after creation except for the percentage-change backfill applied
// when a newer record for the same owner is ingested.
type FinancialMetric struct {
	shared.BaseEntity
	RecordID      uuid.UUID
	Name          string
	Value         decimal.Decimal
	Unit          string
	PreviousValue *decimal.Decimal
	ChangePercent *decimal.Decimal
}

// NewFinancialMetric creates a persisted metric from a derived value
func NewFinancialMetric(recordID uuid.UUID, v MetricValue) *FinancialMetric {
	return &FinancialMetric{
		BaseEntity: shared.NewBaseEntity(),
		RecordID:   recordID,
		Name:       v.Name,
		Value:      v.Value,
		Unit:       v.Unit,
	}
}

// BackfillChange records the previous period's value and the percentage
// change against it. A zero previous value leaves ChangePercent unset.
func (m *FinancialMetric) BackfillChange(previous decimal.Decimal) {
	prev := previous
	m.PreviousValue = &prev
	if previous.IsZero() {
		return
	}
	change := m.Value.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	m.ChangePercent = &change
	m.Touch()
}
