package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/strivehq/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupFinanceTestDB creates an in-memory SQLite database with the finance tables
func setupFinanceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.FinancialRecordModel{}, &models.FinancialMetricModel{})
	require.NoError(t, err)

	return db
}

func monthlyRecord(ownerID uuid.UUID, fileName string, start time.Time) *finance.FinancialRecord {
	return finance.NewFinancialRecord(ownerID, fileName, finance.ReportingPeriod{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	})
}

func TestGormFinancialRecordRepository_CreateWithMetrics(t *testing.T) {
	db := setupFinanceTestDB(t)
	recordRepo := NewGormFinancialRecordRepository(db)
	metricRepo := NewGormFinancialMetricRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	record := monthlyRecord(ownerID, "balanta-ianuarie.xlsx", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	metrics := []*finance.FinancialMetric{
		finance.NewFinancialMetric(record.ID, finance.MetricValue{
			Name: finance.MetricRevenue, Value: decimal.NewFromInt(50000), Unit: finance.UnitCurrency,
		}),
		finance.NewFinancialMetric(record.ID, finance.MetricValue{
			Name: finance.MetricNetProfit, Value: decimal.NewFromInt(12000), Unit: finance.UnitCurrency,
		}),
	}

	require.NoError(t, recordRepo.CreateWithMetrics(ctx, record, metrics))

	t.Run("record is persisted", func(t *testing.T) {
		found, err := recordRepo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "balanta-ianuarie.xlsx", found.FileName)
		assert.Equal(t, finance.PeriodMonthly, found.Kind)
	})

	t.Run("metrics are persisted with the record", func(t *testing.T) {
		stored, err := metricRepo.FindByRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("FindByRecordAndName returns the named metric", func(t *testing.T) {
		m, err := metricRepo.FindByRecordAndName(ctx, record.ID, finance.MetricRevenue)
		require.NoError(t, err)
		assert.True(t, m.Value.Equal(decimal.NewFromInt(50000)))

		_, err = metricRepo.FindByRecordAndName(ctx, record.ID, "No Such Metric")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormFinancialRecordRepository_Ordering(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormFinancialRecordRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()

	january := monthlyRecord(ownerID, "january.csv", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	february := monthlyRecord(ownerID, "february.csv", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	// Stagger creation times so upload order is unambiguous
	february.CreatedAt = january.CreatedAt.Add(time.Minute)

	require.NoError(t, repo.CreateWithMetrics(ctx, january, nil))
	require.NoError(t, repo.CreateWithMetrics(ctx, february, nil))

	t.Run("FindLatestByOwner returns the newest upload", func(t *testing.T) {
		latest, err := repo.FindLatestByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, february.ID, latest.ID)
	})

	t.Run("FindLatestByOwner with no uploads returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindLatestByOwner(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindPreviousByOwner steps back one upload", func(t *testing.T) {
		previous, err := repo.FindPreviousByOwner(ctx, ownerID, february)
		require.NoError(t, err)
		assert.Equal(t, january.ID, previous.ID)

		_, err = repo.FindPreviousByOwner(ctx, ownerID, january)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByOwner lists newest first", func(t *testing.T) {
		records, err := repo.FindByOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, february.ID, records[0].ID)
		assert.Equal(t, january.ID, records[1].ID)
	})
}

func TestGormFinancialMetricRepository_Update(t *testing.T) {
	db := setupFinanceTestDB(t)
	recordRepo := NewGormFinancialRecordRepository(db)
	metricRepo := NewGormFinancialMetricRepository(db)
	ctx := context.Background()

	record := monthlyRecord(uuid.New(), "march.csv", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	metric := finance.NewFinancialMetric(record.ID, finance.MetricValue{
		Name: finance.MetricRevenue, Value: decimal.NewFromInt(60000), Unit: finance.UnitCurrency,
	})
	require.NoError(t, recordRepo.CreateWithMetrics(ctx, record, []*finance.FinancialMetric{metric}))

	metric.BackfillChange(decimal.NewFromInt(50000))
	require.NoError(t, metricRepo.Update(ctx, metric))

	found, err := metricRepo.FindByRecordAndName(ctx, record.ID, finance.MetricRevenue)
	require.NoError(t, err)
	require.NotNil(t, found.PreviousValue)
	assert.True(t, found.PreviousValue.Equal(decimal.NewFromInt(50000)))
	require.NotNil(t, found.ChangePercent)
	assert.True(t, found.ChangePercent.Equal(decimal.NewFromInt(20)))
}
