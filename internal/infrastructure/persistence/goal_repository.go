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

// GormGoalRepository implements goal.GoalRepository using GORM
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a new GormGoalRepository
func NewGormGoalRepository(db *gorm.DB) *GormGoalRepository {
	return &GormGoalRepository{db: db}
}

// Create persists a new goal
func (r *GormGoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	model := models.GoalModelFromDomain(g)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing goal
func (r *GormGoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	model := models.GoalModelFromDomain(g)
	result := r.db.WithContext(ctx).Model(&models.GoalModel{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"progress":    model.Progress,
			"status":      model.Status,
			"due_date":    model.DueDate,
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

// Delete removes a goal by ID
func (r *GormGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a goal by its ID
func (r *GormGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	var model models.GoalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all goals owned by a user, most recently created first
func (r *GormGoalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]goal.Goal, error) {
	var goalModels []models.GoalModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&goalModels).Error; err != nil {
		return nil, err
	}

	goals := make([]goal.Goal, len(goalModels))
	for i, model := range goalModels {
		goals[i] = *model.ToDomain()
	}
	return goals, nil
}

var _ goal.GoalRepository = (*GormGoalRepository)(nil)
