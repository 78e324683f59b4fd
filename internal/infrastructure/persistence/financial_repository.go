package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/strivehq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFinancialRecordRepository implements finance.RecordRepository using GORM
type GormFinancialRecordRepository struct {
	db *gorm.DB
}

// NewGormFinancialRecordRepository creates a new GormFinancialRecordRepository
func NewGormFinancialRecordRepository(db *gorm.DB) *GormFinancialRecordRepository {
	return &GormFinancialRecordRepository{db: db}
}

// CreateWithMetrics persists a record and all of its metrics in one
// transaction. Either everything lands or nothing does.
func (r *GormFinancialRecordRepository) CreateWithMetrics(ctx context.Context, record *finance.FinancialRecord, metrics []*finance.FinancialMetric) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recordModel := models.FinancialRecordModelFromDomain(record)
		if err := tx.Create(recordModel).Error; err != nil {
			return err
		}

		if len(metrics) == 0 {
			return nil
		}

		metricModels := make([]models.FinancialMetricModel, len(metrics))
		for i, m := range metrics {
			metricModels[i] = *models.FinancialMetricModelFromDomain(m)
		}
		return tx.Create(&metricModels).Error
	})
}

// FindByID finds a financial record by its ID
func (r *GormFinancialRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialRecord, error) {
	var model models.FinancialRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByOwner returns the owner's most recently uploaded record
func (r *GormFinancialRecordRepository) FindLatestByOwner(ctx context.Context, ownerID uuid.UUID) (*finance.FinancialRecord, error) {
	var model models.FinancialRecordModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPreviousByOwner returns the record uploaded immediately before the
// given one for the same owner
func (r *GormFinancialRecordRepository) FindPreviousByOwner(ctx context.Context, ownerID uuid.UUID, before *finance.FinancialRecord) (*finance.FinancialRecord, error) {
	var model models.FinancialRecordModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND created_at < ? AND id <> ?", ownerID, before.CreatedAt, before.ID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner returns all records for an owner, newest upload first
func (r *GormFinancialRecordRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]finance.FinancialRecord, error) {
	var recordModels []models.FinancialRecordModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]finance.FinancialRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

var _ finance.RecordRepository = (*GormFinancialRecordRepository)(nil)

// GormFinancialMetricRepository implements finance.MetricRepository using GORM
type GormFinancialMetricRepository struct {
	db *gorm.DB
}

// NewGormFinancialMetricRepository creates a new GormFinancialMetricRepository
func NewGormFinancialMetricRepository(db *gorm.DB) *GormFinancialMetricRepository {
	return &GormFinancialMetricRepository{db: db}
}

// FindByRecord returns all metrics belonging to a record
func (r *GormFinancialMetricRepository) FindByRecord(ctx context.Context, recordID uuid.UUID) ([]finance.FinancialMetric, error) {
	var metricModels []models.FinancialMetricModel
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("name ASC").
		Find(&metricModels).Error; err != nil {
		return nil, err
	}

	metrics := make([]finance.FinancialMetric, len(metricModels))
	for i, model := range metricModels {
		metrics[i] = *model.ToDomain()
	}
	return metrics, nil
}

// FindByRecordAndName returns one named metric from a record
func (r *GormFinancialMetricRepository) FindByRecordAndName(ctx context.Context, recordID uuid.UUID, name string) (*finance.FinancialMetric, error) {
	var model models.FinancialMetricModel
	if err := r.db.WithContext(ctx).
		Where("record_id = ? AND name = ?", recordID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists changes to an existing metric
func (r *GormFinancialMetricRepository) Update(ctx context.Context, m *finance.FinancialMetric) error {
	model := models.FinancialMetricModelFromDomain(m)
	result := r.db.WithContext(ctx).Model(&models.FinancialMetricModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"value":          model.Value,
			"previous_value": model.PreviousValue,
			"change_percent": model.ChangePercent,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ finance.MetricRepository = (*GormFinancialMetricRepository)(nil)
