package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/middleware"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/services"
	"github.com/girmesh03/taskforce/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService     *services.TaskService
	deletionService *services.DeletionService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, deletionService *services.DeletionService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		deletionService: deletionService,
	}
}

// CreateTask creates a task of any kind.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateTaskRequest struct {
		Kind         string    `json:"kind"`
		Title        string    `json:"title" binding:"required"`
		Description  string    `json:"description"`
		Location     string    `json:"location"`
		DueDate      time.Time `json:"due_date" binding:"required"`
		Priority     string    `json:"priority"`
		DepartmentID uint64    `json:"department_id" binding:"required"`

		AssignedTo    []uint64               `json:"assigned_to"`
		MaterialsUsed []models.MaterialUsage `json:"materials_used"`
		ClientInfo    models.ClientInfo      `json:"client_info"`
		Attachments   []models.Attachment    `json:"attachments"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Kind:          models.TaskKind(req.Kind),
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		DueDate:       req.DueDate,
		Priority:      models.TaskPriority(req.Priority),
		CreatedByID:   userID,
		DepartmentID:  req.DepartmentID,
		AssignedTo:    req.AssignedTo,
		MaterialsUsed: req.MaterialsUsed,
		ClientInfo:    req.ClientInfo,
		Attachments:   req.Attachments,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task by ID.
// Task is already loaded with relations by RequireTaskAccess middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// ListTasks returns a department's tasks with filtering and pagination.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	departmentID, err := strconv.ParseUint(c.Query("department_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id"})
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		DepartmentID: departmentID,
		Page:         params.Page,
		PageSize:     params.Limit,
	}

	if kind := c.Query("kind"); kind != "" {
		k := models.TaskKind(kind)
		filter.Kind = &k
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		if !models.IsValidStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		filter.Priority = &p
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		id, err := strconv.ParseUint(createdBy, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid created_by"})
			return
		}
		filter.CreatedByID = &id
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		id, err := strconv.ParseUint(assignedTo, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assigned_to"})
			return
		}
		filter.AssignedUserID = &id
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateTask updates a task's mutable fields. Status is not among them; it
// only moves through recorded activities.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		DueDate     *time.Time `json:"due_date"`
		Priority    *string    `json:"priority"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		input.Priority = &p
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask permanently removes a task with its ledger, assignments and
// notifications.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.deletionService.HardDelete(c.Request.Context(), services.KindTask, task.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AssignTask adds assignees to an assigned task.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type AssignUserRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.taskService.AssignUsers(c.Request.Context(), task.ID, req.UserIDs); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// UnassignTask removes assignees from a task. The last assignee stays.
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type AssignUserRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.taskService.UnassignUsers(c.Request.Context(), task.ID, req.UserIDs); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// RecordActivity appends an entry to the task's activity ledger, optionally
// moving the task's status.
func (h *TaskHandler) RecordActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type RecordActivityRequest struct {
		Description  string               `json:"description" binding:"required"`
		StatusChange *models.StatusChange `json:"status_change"`
		Attachments  []models.Attachment  `json:"attachments"`
	}

	var req RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	activity, err := h.taskService.RecordActivity(c.Request.Context(),
		task.ID, userID, req.Description, req.StatusChange, req.Attachments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskActivityDTO(*activity))
}

// ListActivities returns the task's ledger, newest first.
func (h *TaskHandler) ListActivities(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	activities, err := h.taskService.ListActivities(task.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": dto.ToTaskActivityDTOs(activities),
	})
}

// taskFromContext reads the task loaded by RequireTaskAccess.
func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get("task")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Task not found in context"})
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid task data"})
		return models.Task{}, false
	}
	return task, true
}
