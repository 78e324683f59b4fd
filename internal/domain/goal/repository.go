package goal

import (
	"context"

	"github.com/google/uuid"
)

// GoalRepository defines persistence operations for goals
type GoalRepository interface {
	Create(ctx context.Context, g *Goal) error
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Goal, error)
}

// TaskRepository defines persistence operations for tasks
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]Task, error)
}

// KPIRepository defines persistence operations for KPIs
type KPIRepository interface {
	Create(ctx context.Context, k *KPI) error
	Update(ctx context.Context, k *KPI) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*KPI, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]KPI, error)
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]KPI, error)
}
