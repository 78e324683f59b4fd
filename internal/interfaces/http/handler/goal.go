package handler

import (
	goalapp "github.com/strivehq/backend/internal/application/goal"
	"github.com/strivehq/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	BaseHandler
	goalService *goalapp.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *goalapp.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// RegisterRoutes registers goal routes on the given group
func (h *GoalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	goals := rg.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.Get)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
	}
}

// Create creates a new goal for the authenticated user
func (h *GoalHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req goalapp.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.goalService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns all goals owned by the authenticated user
func (h *GoalHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.goalService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns a single goal by ID
func (h *GoalHandler) Get(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID")
		return
	}

	result, err := h.goalService.Get(c.Request.Context(), ownerID, goalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a goal's fields and status
func (h *GoalHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID")
		return
	}

	var req goalapp.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.goalService.Update(c.Request.Context(), ownerID, goalID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a goal
func (h *GoalHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID")
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), ownerID, goalID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
