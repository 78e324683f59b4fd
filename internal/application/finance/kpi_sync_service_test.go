package finance

import (
	"context"
	"testing"
	"time"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRecomputer struct {
	calls []uuid.UUID
}

func (r *fakeRecomputer) RecomputeProgress(_ context.Context, goalID uuid.UUID) error {
	r.calls = append(r.calls, goalID)
	return nil
}

type syncFixture struct {
	svc        *KPISyncService
	recordRepo *fakeRecordRepo
	kpiRepo    *fakeKPIRepo
	recomputer *fakeRecomputer
}

func newSyncFixture() *syncFixture {
	recordRepo := newFakeRecordRepo()
	metricRepo := &fakeMetricRepo{records: recordRepo}
	kpiRepo := newFakeKPIRepo()
	recomputer := &fakeRecomputer{}
	return &syncFixture{
		svc:        NewKPISyncService(recordRepo, metricRepo, kpiRepo, recomputer, zap.NewNop()),
		recordRepo: recordRepo,
		kpiRepo:    kpiRepo,
		recomputer: recomputer,
	}
}

// seedRecord persists a record holding the given metrics for the owner
func seedRecord(t *testing.T, repo *fakeRecordRepo, ownerID uuid.UUID, metrics ...*finance.FinancialMetric) *finance.FinancialRecord {
	t.Helper()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	record := finance.NewFinancialRecord(ownerID, "balanta.csv", finance.ReportingPeriod{Start: start, End: start.AddDate(0, 1, 0)})
	for _, m := range metrics {
		m.RecordID = record.ID
	}
	require.NoError(t, repo.CreateWithMetrics(context.Background(), record, metrics))
	return record
}

func metricOf(name string, value int64, unit string) *finance.FinancialMetric {
	return finance.NewFinancialMetric(uuid.Nil, finance.MetricValue{
		Name:  name,
		Value: decimal.NewFromInt(value),
		Unit:  unit,
	})
}

func TestSync_NoFinancialData(t *testing.T) {
	f := newSyncFixture()

	result, err := f.svc.Sync(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, result.UpdatedCount)
	assert.Equal(t, "no financial data uploaded yet", result.Message)
}

func TestSync_BindsByKeyword(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	seedRecord(t, f.recordRepo, ownerID, metricOf(finance.MetricRevenue, 50000, finance.UnitCurrency))

	// wording marks it financial even though the kind is operational
	k := goal.NewKPI(ownerID, nil, "Monthly sales", "", finance.UnitCurrency, goal.KPIKindOperational)
	require.NoError(t, f.kpiRepo.Create(context.Background(), k))

	result, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	stored, err := f.kpiRepo.FindByID(context.Background(), k.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentValue)
	assert.True(t, stored.CurrentValue.Equal(decimal.NewFromInt(50000)))
	require.NotNil(t, stored.TargetValue)
	// growth target: 50000 * 1.10
	assert.True(t, stored.TargetValue.Equal(decimal.NewFromInt(55000)), "got %s", stored.TargetValue)
}

func TestSync_SkipsUnmatchedKPI(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	seedRecord(t, f.recordRepo, ownerID, metricOf(finance.MetricRevenue, 50000, finance.UnitCurrency))

	k := goal.NewKPI(ownerID, nil, "Customer satisfaction", "quarterly NPS survey", "points", goal.KPIKindOperational)
	require.NoError(t, f.kpiRepo.Create(context.Background(), k))

	result, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Zero(t, result.UpdatedCount)

	stored, err := f.kpiRepo.FindByID(context.Background(), k.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CurrentValue)
	assert.Nil(t, stored.TargetValue)
}

func TestSync_KeepsManualCurrentValue(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	seedRecord(t, f.recordRepo, ownerID, metricOf(finance.MetricRevenue, 50000, finance.UnitCurrency))

	manual := decimal.NewFromInt(123)
	k := goal.NewKPI(ownerID, nil, "Revenue", "", finance.UnitCurrency, goal.KPIKindFinancial)
	k.CurrentValue = &manual
	require.NoError(t, f.kpiRepo.Create(context.Background(), k))

	_, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)

	stored, err := f.kpiRepo.FindByID(context.Background(), k.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentValue.Equal(manual), "manual value must survive the sync")
	require.NotNil(t, stored.TargetValue, "target is still derived")
}

func TestSync_KeepsExistingTargetAndLatchesAchievement(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	seedRecord(t, f.recordRepo, ownerID, metricOf(finance.MetricRevenue, 50000, finance.UnitCurrency))

	target := decimal.NewFromInt(40000)
	k := goal.NewKPI(ownerID, nil, "Revenue", "", finance.UnitCurrency, goal.KPIKindFinancial)
	k.TargetValue = &target
	require.NoError(t, f.kpiRepo.Create(context.Background(), k))

	_, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)

	stored, err := f.kpiRepo.FindByID(context.Background(), k.ID)
	require.NoError(t, err)
	assert.True(t, stored.TargetValue.Equal(target), "positive targets are never replaced")
	require.NotNil(t, stored.CurrentValue)
	assert.True(t, stored.CurrentValue.Equal(decimal.NewFromInt(50000)))
	assert.True(t, stored.IsAchieved, "50000 reaches the 40000 target")
}

func TestSync_TargetFollowsTrend(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()

	revenue := metricOf(finance.MetricRevenue, 60000, finance.UnitCurrency)
	revenue.BackfillChange(decimal.NewFromInt(50000)) // +20%
	opex := metricOf(finance.MetricOperatingExpenses, 2000, finance.UnitCurrency)
	opex.BackfillChange(decimal.NewFromInt(1000)) // +100%, cost went up
	seedRecord(t, f.recordRepo, ownerID, revenue, opex)

	growth := goal.NewKPI(ownerID, nil, "Revenue", "", finance.UnitCurrency, goal.KPIKindFinancial)
	require.NoError(t, f.kpiRepo.Create(context.Background(), growth))
	cost := goal.NewKPI(ownerID, nil, "Operating expenses", "", finance.UnitCurrency, goal.KPIKindFinancial)
	require.NoError(t, f.kpiRepo.Create(context.Background(), cost))

	_, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)

	stored, err := f.kpiRepo.FindByID(context.Background(), growth.ID)
	require.NoError(t, err)
	// trend-following: 60000 * 1.20
	assert.True(t, stored.TargetValue.Equal(decimal.NewFromInt(72000)), "got %s", stored.TargetValue)

	stored, err = f.kpiRepo.FindByID(context.Background(), cost.ID)
	require.NoError(t, err)
	// increased cost is pushed toward reduction: 2000 * 0.9
	assert.True(t, stored.TargetValue.Equal(decimal.NewFromInt(1800)), "got %s", stored.TargetValue)
}

func TestSync_RecomputesTouchedGoals(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	seedRecord(t, f.recordRepo, ownerID, metricOf(finance.MetricRevenue, 50000, finance.UnitCurrency))

	goalID := uuid.New()
	linked := goal.NewKPI(ownerID, &goalID, "Revenue", "", finance.UnitCurrency, goal.KPIKindFinancial)
	require.NoError(t, f.kpiRepo.Create(context.Background(), linked))
	unlinked := goal.NewKPI(ownerID, nil, "Net profit", "", finance.UnitCurrency, goal.KPIKindFinancial)
	require.NoError(t, f.kpiRepo.Create(context.Background(), unlinked))

	result, err := f.svc.Sync(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount, "net profit has no metric in the record")

	require.Len(t, f.recomputer.calls, 1)
	assert.Equal(t, goalID, f.recomputer.calls[0])
}
