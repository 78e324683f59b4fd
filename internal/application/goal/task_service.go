package goal

import (
	"context"
	"time"

	"github.com/strivehq/backend/internal/domain/goal"
	"github.com/strivehq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService provides application-level task operations
type TaskService struct {
	taskRepo    goal.TaskRepository
	goalService *GoalService
	logger      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo goal.TaskRepository, goalService *GoalService, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		goalService: goalService,
		logger:      logger,
	}
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	GoalID      *uuid.UUID `json:"goal_id,omitempty"`
	KPIID       *uuid.UUID `json:"kpi_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	GoalID      *uuid.UUID `json:"goal_id"`
	KPIID       *uuid.UUID `json:"kpi_id"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,taskstatus"`
}

func toTaskResponse(t *goal.Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		GoalID:      t.GoalID,
		KPIID:       t.KPIID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create creates a new task and recomputes the linked goal's progress
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	t := goal.NewTask(ownerID, req.Title, req.Description, req.GoalID, req.KPIID)
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.recomputeLinkedGoal(ctx, t)
	return toTaskResponse(t), nil
}

// List returns all tasks of the owner
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = *toTaskResponse(&tasks[i])
	}
	return out, nil
}

// Update updates a task and recomputes the linked goal's progress when the
// status changed
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.findOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	t.Title = req.Title
	t.Description = req.Description
	if req.Status != "" && goal.TaskStatus(req.Status) != t.Status {
		t.Status = goal.TaskStatus(req.Status)
		statusChanged = true
	}
	t.Touch()
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if statusChanged {
		s.recomputeLinkedGoal(ctx, t)
	}
	return toTaskResponse(t), nil
}

// Delete removes a task and recomputes the linked goal's progress
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	t, err := s.findOwned(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, t.ID); err != nil {
		return err
	}
	s.recomputeLinkedGoal(ctx, t)
	return nil
}

// recomputeLinkedGoal triggers a guarded progress recompute for the task's
// goal. Recompute failures are logged, not surfaced: the task mutation
// already committed, and any future mutation self-corrects the progress.
func (s *TaskService) recomputeLinkedGoal(ctx context.Context, t *goal.Task) {
	if t.GoalID == nil {
		return
	}
	if err := s.goalService.RecomputeProgress(ctx, *t.GoalID); err != nil {
		s.logger.Warn("progress recompute failed after task mutation",
			zap.String("task_id", t.ID.String()),
			zap.String("goal_id", t.GoalID.String()),
			zap.Error(err))
	}
}

func (s *TaskService) findOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*goal.Task, error) {
	t, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	return t, nil
}
