package handler

import (
	goalapp "github.com/strivehq/backend/internal/application/goal"
	"github.com/strivehq/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	BaseHandler
	taskService *goalapp.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *goalapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes registers task routes on the given group
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
	}
}

// Create creates a new task, optionally linked to a goal or KPI
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req goalapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.taskService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns all tasks owned by the authenticated user
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.taskService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a task; completed tasks feed linked goal progress
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req goalapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.taskService.Update(c.Request.Context(), ownerID, taskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), ownerID, taskID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
