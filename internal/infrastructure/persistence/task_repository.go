package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/strivehq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTaskRepository implements goal.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Create persists a new task
func (r *GormTaskRepository) Create(ctx context.Context, t *goal.Task) error {
	model := models.TaskModelFromDomain(t)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing task
func (r *GormTaskRepository) Update(ctx context.Context, t *goal.Task) error {
	model := models.TaskModelFromDomain(t)
	result := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"goal_id":     model.GoalID,
			"kpi_id":      model.KPIID,
			"title":       model.Title,
			"description": model.Description,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a task by ID
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*goal.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all tasks owned by a user, most recently created first
func (r *GormTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]goal.Task, error) {
	return r.findAll(ctx, "owner_id = ?", ownerID)
}

// FindByGoal finds all tasks linked to a goal
func (r *GormTaskRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]goal.Task, error) {
	return r.findAll(ctx, "goal_id = ?", goalID)
}

func (r *GormTaskRepository) findAll(ctx context.Context, query string, arg any) ([]goal.Task, error) {
	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]goal.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks, nil
}

var _ goal.TaskRepository = (*GormTaskRepository)(nil)
