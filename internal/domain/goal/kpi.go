package goal

import (
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPIKind distinguishes operational KPIs from financially-derived ones
type KPIKind string

const (
	KPIKindOperational KPIKind = "OPERATIONAL"
	KPIKindFinancial   KPIKind = "FINANCIAL"
)

// IsValid checks if the kind is a valid KPIKind
func (k KPIKind) IsValid() bool {
	return k == KPIKindOperational || k == KPIKindFinancial
}

// String returns the string representation
func (k KPIKind) String() string {
	return string(k)
}

// KPI is a measurable indicator attached to a goal. CurrentValue and
// TargetValue are nil until set manually or by a financial sync.
type KPI struct {
	shared.BaseEntity
	OwnerID      uuid.UUID
	GoalID       *uuid.UUID
	Name         string
	Description  string
	Unit         string
	CurrentValue *decimal.Decimal
	TargetValue  *decimal.Decimal
	Kind         KPIKind
	IsAchieved   bool
}

// NewKPI creates a new KPI
func NewKPI(ownerID uuid.UUID, goalID *uuid.UUID, name, description, unit string, kind KPIKind) *KPI {
	return &KPI{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		GoalID:      goalID,
		Name:        name,
		Description: description,
		Unit:        unit,
		Kind:        kind,
	}
}

// HasPositiveTarget returns true if the KPI has a target value greater than zero
func (k *KPI) HasPositiveTarget() bool {
	return k.TargetValue != nil && k.TargetValue.IsPositive()
}

// HasCurrentValue returns true once a current value has been recorded
func (k *KPI) HasCurrentValue() bool {
	return k.CurrentValue != nil
}

// Attainment returns currentValue/targetValue as a percentage capped at 100.
// KPIs without a positive target carry no attainment signal; a KPI with a
// target but no recorded current value counts as 0% attained.
func (k *KPI) Attainment() (decimal.Decimal, bool) {
	if !k.HasPositiveTarget() {
		return decimal.Zero, false
	}
	if k.CurrentValue == nil {
		return decimal.Zero, true
	}
	ratio := k.CurrentValue.Div(*k.TargetValue).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if ratio.GreaterThan(hundred) {
		return hundred, true
	}
	return ratio, true
}

// MarkAchievedIfMet latches IsAchieved to true once currentValue reaches the
// target. The flag is one-way: nothing in the domain ever resets it to false.
func (k *KPI) MarkAchievedIfMet() bool {
	if k.IsAchieved {
		return false
	}
	if k.CurrentValue == nil || k.TargetValue == nil {
		return false
	}
	if k.CurrentValue.GreaterThanOrEqual(*k.TargetValue) {
		k.IsAchieved = true
		k.Touch()
		return true
	}
	return false
}
