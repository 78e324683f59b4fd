// Package finance provides the application-level ingestion and KPI sync
// pipeline: uploaded statements become FinancialRecords with derived
// metrics, and financial KPIs are bound to those metrics.
package finance

import (
	"context"
	"errors"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IngestionService turns a spreadsheet grid into a persisted financial
// record with derived metrics
type IngestionService struct {
	recordRepo finance.RecordRepository
	metricRepo finance.MetricRepository
	kpiRepo    goal.KPIRepository
	classifier finance.ClassifierConfig
	logger     *zap.Logger
}

// NewIngestionService creates a new IngestionService with default heuristics
func NewIngestionService(
	recordRepo finance.RecordRepository,
	metricRepo finance.MetricRepository,
	kpiRepo goal.KPIRepository,
	logger *zap.Logger,
) *IngestionService {
	return &IngestionService{
		recordRepo: recordRepo,
		metricRepo: metricRepo,
		kpiRepo:    kpiRepo,
		classifier: finance.DefaultClassifierConfig(),
		logger:     logger,
	}
}

// MetricResponse represents a derived metric in API responses
type MetricResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Value         decimal.Decimal  `json:"value"`
	Unit          string           `json:"unit"`
	PreviousValue *decimal.Decimal `json:"previous_value,omitempty"`
	ChangePercent *decimal.Decimal `json:"change_percent,omitempty"`
}

// IngestResult is the outcome of a successful ingestion
type IngestResult struct {
	RecordID         uuid.UUID        `json:"record_id"`
	PeriodKind       string           `json:"period_kind"`
	RevenueEstimated bool             `json:"revenue_estimated"`
	Metrics          []MetricResponse `json:"metrics"`
}

func toMetricResponse(m *finance.FinancialMetric) MetricResponse {
	return MetricResponse{
		ID:            m.ID,
		Name:          m.Name,
		Value:         m.Value,
		Unit:          m.Unit,
		PreviousValue: m.PreviousValue,
		ChangePercent: m.ChangePercent,
	}
}

// Ingest runs the full pipeline over an uploaded grid: structure detection,
// classification, metric derivation, atomic persistence, percentage-change
// backfill against the owner's previous record, and the post-ingest
// achievement scan over financial KPIs. Detection failures abort before
// anything is persisted.
func (s *IngestionService) Ingest(ctx context.Context, ownerID uuid.UUID, fileName string, grid finance.Grid, period finance.ReportingPeriod) (*IngestResult, error) {
	if grid.RowCount() < 2 {
		return nil, finance.ErrEmptyData
	}

	layout, err := finance.DetectColumns(grid)
	if err != nil {
		return nil, err
	}

	record := finance.NewFinancialRecord(ownerID, fileName, period)
	buckets := finance.Classify(grid, layout, record.Kind, s.classifier)
	derived := finance.CalculateMetrics(buckets)

	previous, err := s.recordRepo.FindLatestByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("previous record lookup failed, skipping change backfill", zap.Error(err))
		}
		previous = nil
	}

	metrics := make([]*finance.FinancialMetric, 0, len(derived))
	for _, v := range derived {
		m := finance.NewFinancialMetric(record.ID, v)
		if previous != nil {
			if prior, err := s.metricRepo.FindByRecordAndName(ctx, previous.ID, v.Name); err == nil && prior != nil {
				m.BackfillChange(prior.Value)
			}
		}
		metrics = append(metrics, m)
	}

	if err := s.recordRepo.CreateWithMetrics(ctx, record, metrics); err != nil {
		return nil, err
	}

	s.logger.Info("financial statement ingested",
		zap.String("owner_id", ownerID.String()),
		zap.String("record_id", record.ID.String()),
		zap.String("period_kind", record.Kind.String()),
		zap.Bool("revenue_estimated", buckets.RevenueEstimated))

	s.markAchievedKPIs(ctx, ownerID, metrics)

	result := &IngestResult{
		RecordID:         record.ID,
		PeriodKind:       record.Kind.String(),
		RevenueEstimated: buckets.RevenueEstimated,
		Metrics:          make([]MetricResponse, len(metrics)),
	}
	for i, m := range metrics {
		result.Metrics[i] = toMetricResponse(m)
	}
	return result, nil
}

// markAchievedKPIs scans the owner's financial KPIs with a target and
// latches achievement when a same-named metric reached it. The flag is
// never unset here.
func (s *IngestionService) markAchievedKPIs(ctx context.Context, ownerID uuid.UUID, metrics []*finance.FinancialMetric) {
	byName := make(map[string]*finance.FinancialMetric, len(metrics))
	for _, m := range metrics {
		byName[m.Name] = m
	}

	kpis, err := s.kpiRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("achievement scan skipped", zap.Error(err))
		return
	}
	for i := range kpis {
		k := &kpis[i]
		if k.Kind != goal.KPIKindFinancial || k.IsAchieved || !k.HasPositiveTarget() {
			continue
		}
		m, ok := byName[k.Name]
		if !ok {
			continue
		}
		if m.Value.GreaterThanOrEqual(*k.TargetValue) {
			k.IsAchieved = true
			if err := s.kpiRepo.Update(ctx, k); err != nil {
				s.logger.Warn("failed to persist KPI achievement",
					zap.String("kpi_id", k.ID.String()), zap.Error(err))
			}
		}
	}
}

// ListMetrics returns the metrics of the owner's latest financial record
func (s *IngestionService) ListMetrics(ctx context.Context, ownerID uuid.UUID) ([]MetricResponse, error) {
	record, err := s.recordRepo.FindLatestByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.metricRepo.FindByRecord(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	out := make([]MetricResponse, len(metrics))
	for i := range metrics {
		out[i] = toMetricResponse(&metrics[i])
	}
	return out, nil
}
