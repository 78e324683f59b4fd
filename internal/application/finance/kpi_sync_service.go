package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressRecomputer triggers a guarded progress recompute for one goal
type ProgressRecomputer interface {
	RecomputeProgress(ctx context.Context, goalID uuid.UUID) error
}

// KPISyncService binds the owner's financial KPIs to the metrics of the
// latest ingested record and auto-manages their target values
type KPISyncService struct {
	recordRepo finance.RecordRepository
	metricRepo finance.MetricRepository
	kpiRepo    goal.KPIRepository
	progress   ProgressRecomputer
	policy     finance.TargetPolicy
	logger     *zap.Logger
}

// NewKPISyncService creates a new KPISyncService with the default target policy
func NewKPISyncService(
	recordRepo finance.RecordRepository,
	metricRepo finance.MetricRepository,
	kpiRepo goal.KPIRepository,
	progress ProgressRecomputer,
	logger *zap.Logger,
) *KPISyncService {
	return &KPISyncService{
		recordRepo: recordRepo,
		metricRepo: metricRepo,
		kpiRepo:    kpiRepo,
		progress:   progress,
		policy:     finance.DefaultTargetPolicy(),
		logger:     logger,
	}
}

// SyncResult reports the outcome of a KPI sync
type SyncResult struct {
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}

// Sync matches the owner's financial KPIs to canonical metrics by keyword,
// fills unset current values, derives missing targets, latches achievement,
// and triggers a guarded progress recompute for every touched goal. KPIs
// whose wording matches no canonical metric are skipped silently.
func (s *KPISyncService) Sync(ctx context.Context, ownerID uuid.UUID) (*SyncResult, error) {
	record, err := s.recordRepo.FindLatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &SyncResult{Message: "no financial data uploaded yet"}, nil
		}
		return nil, err
	}

	kpis, err := s.kpiRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updated := 0
	touchedGoals := make(map[uuid.UUID]bool)
	for i := range kpis {
		k := &kpis[i]
		if !s.syncOne(ctx, record, k) {
			continue
		}
		updated++
		if k.GoalID != nil {
			touchedGoals[*k.GoalID] = true
		}
	}

	for goalID := range touchedGoals {
		if err := s.progress.RecomputeProgress(ctx, goalID); err != nil {
			s.logger.Warn("progress recompute failed after KPI sync",
				zap.String("goal_id", goalID.String()), zap.Error(err))
		}
	}

	return &SyncResult{
		UpdatedCount: updated,
		Message:      fmt.Sprintf("synced %d financial KPIs", updated),
	}, nil
}

// syncOne binds a single KPI to its metric. Returns true when the KPI was
// modified and persisted.
func (s *KPISyncService) syncOne(ctx context.Context, record *finance.FinancialRecord, k *goal.KPI) bool {
	if k.Kind != goal.KPIKindFinancial && !finance.IsFinancialKPI(k.Name, k.Description) {
		return false
	}
	metricName, ok := finance.MatchMetric(k.Name, k.Description)
	if !ok {
		return false
	}
	metric, err := s.metricRepo.FindByRecordAndName(ctx, record.ID, metricName)
	if err != nil {
		return false
	}

	changed := false

	// Manual current values are never silently overwritten by a sync
	if !k.HasCurrentValue() {
		value := metric.Value
		k.CurrentValue = &value
		changed = true
	}

	// Targets are only derived when no positive target exists
	if !k.HasPositiveTarget() {
		target := s.policy.DeriveTarget(metricName, metric.Value, metric.ChangePercent)
		k.TargetValue = &target
		changed = true
	}

	if k.MarkAchievedIfMet() {
		changed = true
	}
	if !changed {
		return false
	}

	k.Touch()
	if err := s.kpiRepo.Update(ctx, k); err != nil {
		s.logger.Warn("failed to persist synced KPI",
			zap.String("kpi_id", k.ID.String()), zap.Error(err))
		return false
	}
	return true
}
