package goal

import (
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s TaskStatus) String() string {
	return string(s)
}

// Task is a unit of work, optionally linked to a goal and/or a KPI
type Task struct {
	shared.BaseEntity
	OwnerID     uuid.UUID
	GoalID      *uuid.UUID
	KPIID       *uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
}

// NewTask creates a new task in the To Do state
func NewTask(ownerID uuid.UUID, title, description string, goalID, kpiID *uuid.UUID) *Task {
	return &Task{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		GoalID:      goalID,
		KPIID:       kpiID,
		Title:       title,
		Description: description,
		Status:      TaskStatusToDo,
	}
}

// IsCompleted returns true if the task is done
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
