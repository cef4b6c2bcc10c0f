package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/middleware"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/services"
)

// RoutineTaskHandler coordinates routine task log HTTP handlers.
type RoutineTaskHandler struct {
	routineService *services.RoutineTaskService
}

// NewRoutineTaskHandler creates a new RoutineTaskHandler.
func NewRoutineTaskHandler(routineService *services.RoutineTaskService) *RoutineTaskHandler {
	return &RoutineTaskHandler{
		routineService: routineService,
	}
}

// CreateRoutineTask records a dated routine log for a department.
func (h *RoutineTaskHandler) CreateRoutineTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateRoutineTaskRequest struct {
		DepartmentID   uint64                 `json:"department_id" binding:"required"`
		Date           time.Time              `json:"date"`
		PerformedTasks []models.PerformedItem `json:"performed_tasks" binding:"required"`
		Attachments    []models.Attachment    `json:"attachments"`
		MaterialsUsed  []models.MaterialUsage `json:"materials_used"`
	}

	var req CreateRoutineTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	routine, err := h.routineService.Create(c.Request.Context(), services.RoutineTaskInput{
		DepartmentID:   req.DepartmentID,
		PerformedBy:    userID,
		Date:           req.Date,
		PerformedTasks: req.PerformedTasks,
		Attachments:    req.Attachments,
		MaterialsUsed:  req.MaterialsUsed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoutineTaskDTO(*routine))
}

// GetRoutineTask returns a routine log by ID.
func (h *RoutineTaskHandler) GetRoutineTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	routine, err := h.routineService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoutineTaskDTO(*routine))
}

// ListRoutineTasks returns a department's routine logs, newest first.
func (h *RoutineTaskHandler) ListRoutineTasks(c *gin.Context) {
	departmentID, err := strconv.ParseUint(c.Query("department_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id"})
		return
	}

	routines, err := h.routineService.ListByDepartment(departmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routine_tasks": dto.ToRoutineTaskDTOs(routines),
	})
}

// UpdateRoutineTask replaces the performed items and recalculates progress.
func (h *RoutineTaskHandler) UpdateRoutineTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRoutineTaskRequest struct {
		PerformedTasks []models.PerformedItem `json:"performed_tasks" binding:"required"`
	}

	var req UpdateRoutineTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	routine, err := h.routineService.UpdateItems(id, req.PerformedTasks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoutineTaskDTO(*routine))
}

// DeleteRoutineTask removes a routine log with its notifications.
func (h *RoutineTaskHandler) DeleteRoutineTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.routineService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Routine task deleted successfully",
	})
}
