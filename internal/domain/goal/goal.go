package goal

import (
	"time"

	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle status of a goal
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "NOT_STARTED"
	GoalStatusInProgress GoalStatus = "IN_PROGRESS"
	GoalStatusCompleted  GoalStatus = "COMPLETED"
	GoalStatusOnHold     GoalStatus = "ON_HOLD"
)

// IsValid checks if the status is a valid GoalStatus
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusNotStarted, GoalStatusInProgress, GoalStatusCompleted, GoalStatusOnHold:
		return true
	}
	return false
}

// String returns the string representation
func (s GoalStatus) String() string {
	return string(s)
}

// IsSticky returns true if the status was set manually and must survive
// automatic progress recomputation. Completed and On Hold are authoritative
// overrides; the aggregator never replaces them.
func (s GoalStatus) IsSticky() bool {
	return s == GoalStatusCompleted || s == GoalStatusOnHold
}

// Goal is an aggregate root owning tasks and KPIs. Progress holds the last
// computed percentage in [0, 100].
type Goal struct {
	shared.BaseEntity
	OwnerID     uuid.UUID
	Title       string
	Description string
	Progress    int
	Status      GoalStatus
	DueDate     *time.Time
}

// NewGoal creates a new goal in the Not Started state
func NewGoal(ownerID uuid.UUID, title, description string, dueDate *time.Time) *Goal {
	return &Goal{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Progress:    0,
		Status:      GoalStatusNotStarted,
		DueDate:     dueDate,
	}
}

// ApplySnapshot writes a computed progress snapshot onto the goal. It is a
// no-op when the goal carries a sticky manual status or when no snapshot
// could be computed (nil means "no signal, keep prior state").
func (g *Goal) ApplySnapshot(s *Snapshot) bool {
	if g.Status.IsSticky() || s == nil {
		return false
	}
	g.Progress = s.Progress
	g.Status = s.Status
	g.Touch()
	return true
}

// SetStatus applies a manual status change
func (g *Goal) SetStatus(status GoalStatus) error {
	if !status.IsValid() {
		return shared.ErrInvalidInput
	}
	g.Status = status
	if status == GoalStatusCompleted {
		g.Progress = 100
	}
	g.Touch()
	return nil
}
