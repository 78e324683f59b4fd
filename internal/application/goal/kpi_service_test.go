package goal

import (
	"context"
	"testing"

	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKPIServiceCreate_ClassifiesKind(t *testing.T) {
	f := newGoalFixture()
	svc := NewKPIService(f.kpiRepo, f.svc, zap.NewNop())
	ownerID := uuid.New()

	t.Run("financial wording", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{Name: "Monthly revenue"})
		require.NoError(t, err)
		assert.Equal(t, goal.KPIKindFinancial.String(), resp.Kind)
	})

	t.Run("operational wording", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{Name: "Support tickets closed"})
		require.NoError(t, err)
		assert.Equal(t, goal.KPIKindOperational.String(), resp.Kind)
	})

	t.Run("description carries the signal", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{
			Name:        "North star",
			Description: "tracks gross margin across the quarter",
		})
		require.NoError(t, err)
		assert.Equal(t, goal.KPIKindFinancial.String(), resp.Kind)
	})
}

func TestKPIServiceCreate_LatchesAchievement(t *testing.T) {
	f := newGoalFixture()
	svc := NewKPIService(f.kpiRepo, f.svc, zap.NewNop())
	ownerID := uuid.New()

	current := decimal.NewFromInt(120)
	target := decimal.NewFromInt(100)
	resp, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{
		Name:         "Revenue",
		CurrentValue: &current,
		TargetValue:  &target,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsAchieved)
}

func TestKPIServiceUpdate_ManualValuesWinButAchievementSticks(t *testing.T) {
	f := newGoalFixture()
	svc := NewKPIService(f.kpiRepo, f.svc, zap.NewNop())
	ownerID := uuid.New()

	current := decimal.NewFromInt(120)
	target := decimal.NewFromInt(100)
	created, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{
		Name:         "Revenue",
		CurrentValue: &current,
		TargetValue:  &target,
	})
	require.NoError(t, err)
	require.True(t, created.IsAchieved)

	// dropping below the target does not unset the latch
	lower := decimal.NewFromInt(50)
	resp, err := svc.Update(context.Background(), ownerID, created.ID, UpdateKPIRequest{
		Name:         "Revenue",
		CurrentValue: &lower,
		TargetValue:  &target,
	})
	require.NoError(t, err)
	assert.True(t, resp.CurrentValue.Equal(lower))
	assert.True(t, resp.IsAchieved, "achievement only latches upward")
}

func TestKPIServiceUpdate_FeedsGoalProgress(t *testing.T) {
	f := newGoalFixture()
	svc := NewKPIService(f.kpiRepo, f.svc, zap.NewNop())
	ownerID := uuid.New()
	g, err := f.svc.Create(context.Background(), ownerID, CreateGoalRequest{Title: "Hit the number"})
	require.NoError(t, err)

	target := decimal.NewFromInt(100)
	created, err := svc.Create(context.Background(), ownerID, CreateKPIRequest{
		Name:        "Revenue",
		GoalID:      &g.ID,
		TargetValue: &target,
	})
	require.NoError(t, err)

	half := decimal.NewFromInt(50)
	_, err = svc.Update(context.Background(), ownerID, created.ID, UpdateKPIRequest{
		Name:         "Revenue",
		CurrentValue: &half,
		TargetValue:  &target,
	})
	require.NoError(t, err)

	stored, err := f.goalRepo.FindByID(context.Background(), g.ID)
	require.NoError(t, err)
	// no tasks, so the KPI weight carries alone: 50% attainment * 0.3
	assert.Equal(t, 15, stored.Progress)
	assert.Equal(t, goal.GoalStatusInProgress, stored.Status)
}
