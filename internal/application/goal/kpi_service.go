package goal

import (
	"context"
	"time"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// KPIService provides application-level KPI operations
type KPIService struct {
	kpiRepo     goal.KPIRepository
	goalService *GoalService
	logger      *zap.Logger
}

// NewKPIService creates a new KPIService
func NewKPIService(kpiRepo goal.KPIRepository, goalService *GoalService, logger *zap.Logger) *KPIService {
	return &KPIService{
		kpiRepo:     kpiRepo,
		goalService: goalService,
		logger:      logger,
	}
}

// KPIResponse represents a KPI in API responses
type KPIResponse struct {
	ID           uuid.UUID        `json:"id"`
	GoalID       *uuid.UUID       `json:"goal_id,omitempty"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	CurrentValue *decimal.Decimal `json:"current_value,omitempty"`
	TargetValue  *decimal.Decimal `json:"target_value,omitempty"`
	Kind         string           `json:"kind"`
	IsAchieved   bool             `json:"is_achieved"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateKPIRequest represents a request to create a KPI
type CreateKPIRequest struct {
	Name         string           `json:"name" binding:"required,max=200"`
	Description  string           `json:"description"`
	Unit         string           `json:"unit"`
	GoalID       *uuid.UUID       `json:"goal_id"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	TargetValue  *decimal.Decimal `json:"target_value"`
}

// UpdateKPIRequest represents a request to update a KPI's values
type UpdateKPIRequest struct {
	Name         string           `json:"name" binding:"required,max=200"`
	Description  string           `json:"description"`
	Unit         string           `json:"unit"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	TargetValue  *decimal.Decimal `json:"target_value"`
}

func toKPIResponse(k *goal.KPI) *KPIResponse {
	return &KPIResponse{
		ID:           k.ID,
		GoalID:       k.GoalID,
		Name:         k.Name,
		Description:  k.Description,
		Unit:         k.Unit,
		CurrentValue: k.CurrentValue,
		TargetValue:  k.TargetValue,
		Kind:         k.Kind.String(),
		IsAchieved:   k.IsAchieved,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    k.UpdatedAt,
	}
}

// classifyKind marks a KPI financial when its wording carries financial
// keywords, which opts it into metric binding during sync
func classifyKind(name, description string) goal.KPIKind {
	if finance.IsFinancialKPI(name, description) {
		return goal.KPIKindFinancial
	}
	return goal.KPIKindOperational
}

// Create creates a new KPI and recomputes the linked goal's progress
func (s *KPIService) Create(ctx context.Context, ownerID uuid.UUID, req CreateKPIRequest) (*KPIResponse, error) {
	k := goal.NewKPI(ownerID, req.GoalID, req.Name, req.Description, req.Unit, classifyKind(req.Name, req.Description))
	k.CurrentValue = req.CurrentValue
	k.TargetValue = req.TargetValue
	k.MarkAchievedIfMet()
	if err := s.kpiRepo.Create(ctx, k); err != nil {
		return nil, err
	}
	s.recomputeLinkedGoal(ctx, k)
	return toKPIResponse(k), nil
}

// List returns all KPIs of the owner
func (s *KPIService) List(ctx context.Context, ownerID uuid.UUID) ([]KPIResponse, error) {
	kpis, err := s.kpiRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]KPIResponse, len(kpis))
	for i := range kpis {
		out[i] = *toKPIResponse(&kpis[i])
	}
	return out, nil
}

// Update applies a manual edit to a KPI. Manual values always win; the
// achievement flag only ever latches upward.
func (s *KPIService) Update(ctx context.Context, ownerID, kpiID uuid.UUID, req UpdateKPIRequest) (*KPIResponse, error) {
	k, err := s.findOwned(ctx, ownerID, kpiID)
	if err != nil {
		return nil, err
	}

	k.Name = req.Name
	k.Description = req.Description
	k.Unit = req.Unit
	k.Kind = classifyKind(req.Name, req.Description)
	k.CurrentValue = req.CurrentValue
	k.TargetValue = req.TargetValue
	k.MarkAchievedIfMet()
	k.Touch()
	if err := s.kpiRepo.Update(ctx, k); err != nil {
		return nil, err
	}

	s.recomputeLinkedGoal(ctx, k)
	return toKPIResponse(k), nil
}

// Delete removes a KPI and recomputes the linked goal's progress
func (s *KPIService) Delete(ctx context.Context, ownerID, kpiID uuid.UUID) error {
	k, err := s.findOwned(ctx, ownerID, kpiID)
	if err != nil {
		return err
	}
	if err := s.kpiRepo.Delete(ctx, k.ID); err != nil {
		return err
	}
	s.recomputeLinkedGoal(ctx, k)
	return nil
}

func (s *KPIService) recomputeLinkedGoal(ctx context.Context, k *goal.KPI) {
	if k.GoalID == nil {
		return
	}
	if err := s.goalService.RecomputeProgress(ctx, *k.GoalID); err != nil {
		s.logger.Warn("progress recompute failed after KPI mutation",
			zap.String("kpi_id", k.ID.String()),
			zap.String("goal_id", k.GoalID.String()),
			zap.Error(err))
	}
}

func (s *KPIService) findOwned(ctx context.Context, ownerID, kpiID uuid.UUID) (*goal.KPI, error) {
	k, err := s.kpiRepo.FindByID(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	if k.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	return k, nil
}
