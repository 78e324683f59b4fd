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

// GormKPIRepository implements goal.KPIRepository using GORM
type GormKPIRepository struct {
	db *gorm.DB
}

// NewGormKPIRepository creates a new GormKPIRepository
func NewGormKPIRepository(db *gorm.DB) *GormKPIRepository {
	return &GormKPIRepository{db: db}
}

// Create persists a new KPI
func (r *GormKPIRepository) Create(ctx context.Context, k *goal.KPI) error {
	model := models.KPIModelFromDomain(k)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing KPI
func (r *GormKPIRepository) Update(ctx context.Context, k *goal.KPI) error {
	model := models.KPIModelFromDomain(k)
	result := r.db.WithContext(ctx).Model(&models.KPIModel{}).
		Where("id = ?", k.ID).
		Updates(map[string]any{
			"goal_id":       model.GoalID,
			"name":          model.Name,
			"description":   model.Description,
			"unit":          model.Unit,
			"current_value": model.CurrentValue,
			"target_value":  model.TargetValue,
			"kind":          model.Kind,
			"is_achieved":   model.IsAchieved,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a KPI by ID
func (r *GormKPIRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.KPIModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a KPI by its ID
func (r *GormKPIRepository) FindByID(ctx context.Context, id uuid.UUID) (*goal.KPI, error) {
	var model models.KPIModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all KPIs owned by a user, most recently created first
func (r *GormKPIRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]goal.KPI, error) {
	return r.findAll(ctx, "owner_id = ?", ownerID)
}

// FindByGoal finds all KPIs linked to a goal
func (r *GormKPIRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]goal.KPI, error) {
	return r.findAll(ctx, "goal_id = ?", goalID)
}

func (r *GormKPIRepository) findAll(ctx context.Context, query string, arg any) ([]goal.KPI, error) {
	var kpiModels []models.KPIModel
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Find(&kpiModels).Error; err != nil {
		return nil, err
	}

	kpis := make([]goal.KPI, len(kpiModels))
	for i, model := range kpiModels {
		kpis[i] = *model.ToDomain()
	}
	return kpis, nil
}

var _ goal.KPIRepository = (*GormKPIRepository)(nil)
