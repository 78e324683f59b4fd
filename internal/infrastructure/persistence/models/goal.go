package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/strivehq/backend/internal/domain/goal"
)

// GoalModel is the persistence model for the Goal aggregate root.
type GoalModel struct {
	BaseModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Progress    int             `gorm:"not null;default:0"`
	Status      goal.GoalStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'"`
	DueDate     *time.Time
}

// TableName returns the table name for GORM
func (GoalModel) TableName() string {
	return "goals"
}

// ToDomain converts the persistence model to a domain Goal entity.
func (m *GoalModel) ToDomain() *goal.Goal {
	return &goal.Goal{
		BaseEntity:  m.BaseModel.ToDomain(),
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Progress:    m.Progress,
		Status:      m.Status,
		DueDate:     m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain Goal entity.
func (m *GoalModel) FromDomain(g *goal.Goal) {
	m.FromDomainBaseEntity(g.BaseEntity)
	m.OwnerID = g.OwnerID
	m.Title = g.Title
	m.Description = g.Description
	m.Progress = g.Progress
	m.Status = g.Status
	m.DueDate = g.DueDate
}

// GoalModelFromDomain creates a new persistence model from a domain Goal entity.
func GoalModelFromDomain(g *goal.Goal) *GoalModel {
	m := &GoalModel{}
	m.FromDomain(g)
	return m
}

// TaskModel is the persistence model for the Task domain entity.
type TaskModel struct {
	BaseModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	GoalID      *uuid.UUID      `gorm:"type:uuid;index"`
	KPIID       *uuid.UUID      `gorm:"type:uuid;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Status      goal.TaskStatus `gorm:"type:varchar(20);not null;default:'TO_DO'"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task entity.
func (m *TaskModel) ToDomain() *goal.Task {
	return &goal.Task{
		BaseEntity:  m.BaseModel.ToDomain(),
		OwnerID:     m.OwnerID,
		GoalID:      m.GoalID,
		KPIID:       m.KPIID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Task entity.
func (m *TaskModel) FromDomain(t *goal.Task) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.OwnerID = t.OwnerID
	m.GoalID = t.GoalID
	m.KPIID = t.KPIID
	m.Title = t.Title
	m.Description = t.Description
	m.Status = t.Status
}

// TaskModelFromDomain creates a new persistence model from a domain Task entity.
func TaskModelFromDomain(t *goal.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}

// KPIModel is the persistence model for the KPI domain entity.
type KPIModel struct {
	BaseModel
	OwnerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	GoalID       *uuid.UUID       `gorm:"type:uuid;index"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	Unit         string           `gorm:"type:varchar(50)"`
	CurrentValue *decimal.Decimal `gorm:"type:decimal(18,4)"`
	TargetValue  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Kind         goal.KPIKind     `gorm:"type:varchar(20);not null;default:'OPERATIONAL'"`
	IsAchieved   bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (KPIModel) TableName() string {
	return "kpis"
}

// ToDomain converts the persistence model to a domain KPI entity.
func (m *KPIModel) ToDomain() *goal.KPI {
	return &goal.KPI{
		BaseEntity:   m.BaseModel.ToDomain(),
		OwnerID:      m.OwnerID,
		GoalID:       m.GoalID,
		Name:         m.Name,
		Description:  m.Description,
		Unit:         m.Unit,
		CurrentValue: m.CurrentValue,
		TargetValue:  m.TargetValue,
		Kind:         m.Kind,
		IsAchieved:   m.IsAchieved,
	}
}

// FromDomain populates the persistence model from a domain KPI entity.
func (m *KPIModel) FromDomain(k *goal.KPI) {
	m.FromDomainBaseEntity(k.BaseEntity)
	m.OwnerID = k.OwnerID
	m.GoalID = k.GoalID
	m.Name = k.Name
	m.Description = k.Description
	m.Unit = k.Unit
	m.CurrentValue = k.CurrentValue
	m.TargetValue = k.TargetValue
	m.Kind = k.Kind
	m.IsAchieved = k.IsAchieved
}

// KPIModelFromDomain creates a new persistence model from a domain KPI entity.
func KPIModelFromDomain(k *goal.KPI) *KPIModel {
	m := &KPIModel{}
	m.FromDomain(k)
	return m
}
