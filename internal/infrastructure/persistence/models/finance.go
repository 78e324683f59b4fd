package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/strivehq/backend/internal/domain/finance"
)

// FinancialRecordModel is the persistence model for one ingested statement.
type FinancialRecordModel struct {
	BaseModel
	OwnerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	FileName    string             `gorm:"type:varchar(255);not null"`
	PeriodStart time.Time          `gorm:"not null"`
	PeriodEnd   time.Time          `gorm:"not null;index"`
	Kind        finance.PeriodKind `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (FinancialRecordModel) TableName() string {
	return "financial_records"
}

// ToDomain converts the persistence model to a domain FinancialRecord entity.
func (m *FinancialRecordModel) ToDomain() *finance.FinancialRecord {
	return &finance.FinancialRecord{
		BaseEntity:  m.BaseModel.ToDomain(),
		OwnerID:     m.OwnerID,
		FileName:    m.FileName,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Kind:        m.Kind,
	}
}

// FromDomain populates the persistence model from a domain FinancialRecord entity.
func (m *FinancialRecordModel) FromDomain(r *finance.FinancialRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OwnerID = r.OwnerID
	m.FileName = r.FileName
	m.PeriodStart = r.PeriodStart
	m.PeriodEnd = r.PeriodEnd
	m.Kind = r.Kind
}

// FinancialRecordModelFromDomain creates a new persistence model from a domain entity.
func FinancialRecordModelFromDomain(r *finance.FinancialRecord) *FinancialRecordModel {
	m := &FinancialRecordModel{}
	m.FromDomain(r)
	return m
}

// FinancialMetricModel is the persistence model for one derived metric.
type FinancialMetricModel struct {
	BaseModel
	RecordID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_metric_record_name,priority:1"`
	Name          string           `gorm:"type:varchar(100);not null;index:idx_metric_record_name,priority:2"`
	Value         decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Unit          string           `gorm:"type:varchar(20);not null"`
	PreviousValue *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ChangePercent *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (FinancialMetricModel) TableName() string {
	return "financial_metrics"
}

// ToDomain converts the persistence model to a domain FinancialMetric entity.
func (m *FinancialMetricModel) ToDomain() *finance.FinancialMetric {
	return &finance.FinancialMetric{
		BaseEntity:    m.BaseModel.ToDomain(),
		RecordID:      m.RecordID,
		Name:          m.Name,
		Value:         m.Value,
		Unit:          m.Unit,
		PreviousValue: m.PreviousValue,
		ChangePercent: m.ChangePercent,
	}
}

// FromDomain populates the persistence model from a domain FinancialMetric entity.
func (m *FinancialMetricModel) FromDomain(fm *finance.FinancialMetric) {
	m.FromDomainBaseEntity(fm.BaseEntity)
	m.RecordID = fm.RecordID
	m.Name = fm.Name
	m.Value = fm.Value
	m.Unit = fm.Unit
	m.PreviousValue = fm.PreviousValue
	m.ChangePercent = fm.ChangePercent
}

// FinancialMetricModelFromDomain creates a new persistence model from a domain entity.
func FinancialMetricModelFromDomain(fm *finance.FinancialMetric) *FinancialMetricModel {
	m := &FinancialMetricModel{}
	m.FromDomain(fm)
	return m
}
