// Package goal provides application-level goal, task, and KPI operations.
// Every mutation that can affect a goal's progress funnels through
// GoalService.RecomputeProgress, which enforces the sticky-status guard
// around the pure aggregation function.
package goal

import (
	"context"
	"time"

	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoalService provides application-level goal operations
type GoalService struct {
	goalRepo goal.GoalRepository
	taskRepo goal.TaskRepository
	kpiRepo  goal.KPIRepository
	logger   *zap.Logger
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo goal.GoalRepository, taskRepo goal.TaskRepository, kpiRepo goal.KPIRepository, logger *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		taskRepo: taskRepo,
		kpiRepo:  kpiRepo,
		logger:   logger,
	}
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Progress    int        `json:"progress"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateGoalRequest represents a request to create a goal
type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateGoalRequest represents a request to update a goal
type UpdateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,goalstatus"`
	DueDate     *time.Time `json:"due_date"`
}

func toGoalResponse(g *goal.Goal) *GoalResponse {
	return &GoalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Progress:    g.Progress,
		Status:      g.Status.String(),
		DueDate:     g.DueDate,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// Create creates a new goal for the owner
func (s *GoalService) Create(ctx context.Context, ownerID uuid.UUID, req CreateGoalRequest) (*GoalResponse, error) {
	g := goal.NewGoal(ownerID, req.Title, req.Description, req.DueDate)
	if err := s.goalRepo.Create(ctx, g); err != nil {
		return nil, err
	}
	return toGoalResponse(g), nil
}

// Get returns one of the owner's goals
func (s *GoalService) Get(ctx context.Context, ownerID, goalID uuid.UUID) (*GoalResponse, error) {
	g, err := s.findOwned(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	return toGoalResponse(g), nil
}

// List returns all goals of the owner
func (s *GoalService) List(ctx context.Context, ownerID uuid.UUID) ([]GoalResponse, error) {
	goals, err := s.goalRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]GoalResponse, len(goals))
	for i := range goals {
		out[i] = *toGoalResponse(&goals[i])
	}
	return out, nil
}

// Update updates a goal's editable fields. A manual status change to
// Completed or On Hold pins the goal against automatic recomputation;
// changing it back to an active status re-enables it and recomputes
// immediately.
func (s *GoalService) Update(ctx context.Context, ownerID, goalID uuid.UUID, req UpdateGoalRequest) (*GoalResponse, error) {
	g, err := s.findOwned(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	g.Title = req.Title
	g.Description = req.Description
	g.DueDate = req.DueDate
	g.Touch()
	if req.Status != "" {
		if err := g.SetStatus(goal.GoalStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if err := s.goalRepo.Update(ctx, g); err != nil {
		return nil, err
	}

	if !g.Status.IsSticky() {
		if g, err = s.recompute(ctx, g); err != nil {
			return nil, err
		}
	}
	return toGoalResponse(g), nil
}

// Delete removes a goal
func (s *GoalService) Delete(ctx context.Context, ownerID, goalID uuid.UUID) error {
	g, err := s.findOwned(ctx, ownerID, goalID)
	if err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, g.ID)
}

// RecomputeProgress recomputes a goal's progress from its current tasks and
// KPIs and persists the result. Goals with a sticky manual status are left
// untouched, as are goals with no tasks and no KPIs.
func (s *GoalService) RecomputeProgress(ctx context.Context, goalID uuid.UUID) error {
	g, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return err
	}
	if g.Status.IsSticky() {
		return nil
	}
	_, err = s.recompute(ctx, g)
	return err
}

func (s *GoalService) recompute(ctx context.Context, g *goal.Goal) (*goal.Goal, error) {
	tasks, err := s.taskRepo.FindByGoal(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	kpis, err := s.kpiRepo.FindByGoal(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	snap := goal.ComputeProgress(tasks, kpis)
	if !g.ApplySnapshot(snap) {
		return g, nil
	}
	if err := s.goalRepo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.logger.Debug("goal progress recomputed",
		zap.String("goal_id", g.ID.String()),
		zap.Int("progress", g.Progress),
		zap.String("status", g.Status.String()))
	return g, nil
}

func (s *GoalService) findOwned(ctx context.Context, ownerID, goalID uuid.UUID) (*goal.Goal, error) {
	g, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	return g, nil
}
