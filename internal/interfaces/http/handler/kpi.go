package handler

import (
	goalapp "github.com/strivehq/backend/internal/application/goal"
	"github.com/strivehq/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// KPIHandler handles KPI HTTP requests
type KPIHandler struct {
	BaseHandler
	kpiService *goalapp.KPIService
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(kpiService *goalapp.KPIService) *KPIHandler {
	return &KPIHandler{kpiService: kpiService}
}

// RegisterRoutes registers KPI routes on the given group
func (h *KPIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	kpis := rg.Group("/kpis")
	{
		kpis.POST("", h.Create)
		kpis.GET("", h.List)
		kpis.PUT("/:id", h.Update)
		kpis.DELETE("/:id", h.Delete)
	}
}

// Create creates a new KPI; kind is classified from its wording
func (h *KPIHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req goalapp.CreateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.kpiService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns all KPIs owned by the authenticated user
func (h *KPIHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.kpiService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a KPI's values; reaching the target latches achievement
func (h *KPIHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	kpiID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid KPI ID")
		return
	}

	var req goalapp.UpdateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.kpiService.Update(c.Request.Context(), ownerID, kpiID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a KPI
func (h *KPIHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	kpiID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid KPI ID")
		return
	}

	if err := h.kpiService.Delete(c.Request.Context(), ownerID, kpiID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
