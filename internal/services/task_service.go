package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/utils"
	"gorm.io/gorm"
)

// TaskService handles task business logic, including the status state
// machine. Task.Status is only ever written through RecordActivity; no other
// code path mutates it.
type TaskService struct {
	txManager    repository.TxManager
	taskRepo     repository.TaskRepository
	activityRepo repository.TaskActivityRepository
	userRepo     repository.UserRepository
	deptRepo     repository.DepartmentRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	txManager repository.TxManager,
	taskRepo repository.TaskRepository,
	activityRepo repository.TaskActivityRepository,
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
) *TaskService {
	return &TaskService{
		txManager:    txManager,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		deptRepo:     deptRepo,
	}
}

// CreateTaskInput represents input for creating a task of any kind.
type CreateTaskInput struct {
	Kind         models.TaskKind
	Title        string
	Description  string
	Location     string
	DueDate      time.Time
	Priority     models.TaskPriority
	CreatedByID  uint64
	DepartmentID uint64

	// Assigned tasks
	AssignedTo    []uint64
	MaterialsUsed []models.MaterialUsage

	// Project tasks
	ClientInfo models.ClientInfo

	Attachments []models.Attachment
}

// UpdateTaskInput represents input for updating a task. Status is absent on
// purpose: status moves through the activity ledger only.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Location    *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
}

// CreateTask creates a task after validating the kind-specific payload and
// the referential rules (creator and assignees must belong to the task's
// department).
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.Kind == "" {
		input.Kind = models.KindBasic
	}
	if err := s.validateTaskInput(&input); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.FindByID(input.CreatedByID, false)
	if err != nil {
		return nil, notFoundOr("creator", err)
	}
	if creator.DepartmentID != input.DepartmentID {
		return nil, apperrors.Unauthorized("creator must belong to task department")
	}
	if _, err := s.deptRepo.FindByID(input.DepartmentID, false); err != nil {
		return nil, notFoundOr("department", err)
	}

	task := &models.Task{
		Kind:          input.Kind,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Status:        models.StatusToDo,
		DueDate:       input.DueDate,
		Priority:      input.Priority,
		CreatedByID:   &input.CreatedByID,
		DepartmentID:  input.DepartmentID,
		MaterialsUsed: input.MaterialsUsed,
		Attachments:   input.Attachments,
		ClientInfo:    input.ClientInfo,
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)

		if task.Kind == models.KindAssigned {
			count, err := taskRepo.CountDepartmentMembers(input.AssignedTo, input.DepartmentID)
			if err != nil {
				return fmt.Errorf("failed to verify assignees: %w", err)
			}
			if count != int64(len(uniqueUint64(input.AssignedTo))) {
				return apperrors.Unauthorized("all assignees must be active members of the task department")
			}
		}

		if err := taskRepo.Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		if task.Kind == models.KindAssigned {
			if err := taskRepo.AssignUsers(task.ID, uniqueUint64(input.AssignedTo)); err != nil {
				return fmt.Errorf("failed to assign users: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "Department", "Assignments", "Assignments.User")
}

// validateTaskFields checks the constraints shared by create and update:
// title/description/location bounds and the priority enum.
func validateTaskFields(title, description, location string, priority models.TaskPriority) error {
	if title == "" {
		return apperrors.Validation("title", "title is required")
	}
	if len(title) > 100 {
		return apperrors.Validation("title", "title cannot exceed 100 characters")
	}
	if len(description) > 200 {
		return apperrors.Validation("description", "description cannot exceed 200 characters")
	}
	if len(location) > 100 {
		return apperrors.Validation("location", "location cannot exceed 100 characters")
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return apperrors.Validation("priority", "priority must be Low, Medium, or High")
	}
	return nil
}

func (s *TaskService) validateTaskInput(input *CreateTaskInput) error {
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if err := validateTaskFields(input.Title, input.Description, input.Location, input.Priority); err != nil {
		return err
	}
	if input.DueDate.IsZero() {
		return apperrors.Validation("due_date", "due date is required")
	}
	if !input.DueDate.After(time.Now()) {
		return apperrors.Validation("due_date", "due date must be in the future")
	}

	switch input.Kind {
	case models.KindBasic:
	case models.KindAssigned:
		if len(input.AssignedTo) == 0 {
			return apperrors.Validation("assigned_to", "at least one assigned user is required")
		}
		if err := models.ValidateMaterials(input.MaterialsUsed); err != nil {
			return apperrors.Validation("materials_used", err.Error())
		}
	case models.KindProject:
		if input.ClientInfo.Name == "" {
			return apperrors.Validation("client_info.name", "client name is required")
		}
		if !utils.IsValidPhone(input.ClientInfo.Phone) {
			return apperrors.Validation("client_info.phone", "invalid phone number")
		}
		input.ClientInfo.Name = utils.CapitalizeWords(input.ClientInfo.Name)
		input.ClientInfo.Address = utils.CapitalizeWords(input.ClientInfo.Address)
		input.ClientInfo.Phone = utils.NormalizePhone(input.ClientInfo.Phone)
	default:
		return apperrors.Validation("kind", fmt.Sprintf("unknown task kind %q", input.Kind))
	}
	return nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "CreatedBy", "Department", "Assignments", "Assignments.User")
	if err != nil {
		return nil, notFoundOr("task", err)
	}
	return task, nil
}

// ListTasks retrieves tasks for a department with filtering and pagination.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask updates a task's mutable fields. Status is not among them.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, notFoundOr("task", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Location != nil {
		task.Location = *input.Location
	}
	if input.DueDate != nil {
		if input.DueDate.Before(task.CreatedAt) {
			return nil, apperrors.Validation("due_date", "due date cannot be before the creation date")
		}
		task.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if err := validateTaskFields(task.Title, task.Description, task.Location, task.Priority); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "Department", "Assignments", "Assignments.User")
}

// AssignUsers adds assignees to an assigned task after membership checks.
func (s *TaskService) AssignUsers(ctx context.Context, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return apperrors.Validation("user_ids", "at least one user ID is required")
	}

	return s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)

		task, err := taskRepo.FindByID(taskID)
		if err != nil {
			return notFoundOr("task", err)
		}
		if task.Kind != models.KindAssigned {
			return apperrors.Validation("kind", "only assigned tasks accept assignees")
		}

		ids := uniqueUint64(userIDs)
		count, err := taskRepo.CountDepartmentMembers(ids, task.DepartmentID)
		if err != nil {
			return fmt.Errorf("failed to verify users: %w", err)
		}
		if count != int64(len(ids)) {
			return apperrors.Unauthorized("all assignees must be active members of the task department")
		}

		return taskRepo.AssignUsers(taskID, ids)
	})
}

// UnassignUsers removes assignees from a task. The last assignee cannot be
// removed; assigned tasks always keep at least one.
func (s *TaskService) UnassignUsers(ctx context.Context, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return apperrors.Validation("user_ids", "at least one user ID is required")
	}

	return s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)

		task, err := taskRepo.FindByID(taskID, "Assignments")
		if err != nil {
			return notFoundOr("task", err)
		}

		remove := make(map[uint64]bool, len(userIDs))
		for _, id := range userIDs {
			remove[id] = true
		}
		remaining := 0
		for _, a := range task.Assignments {
			if !remove[a.UserID] {
				remaining++
			}
		}
		if task.Kind == models.KindAssigned && remaining == 0 {
			return apperrors.Validation("user_ids", "an assigned task must keep at least one assignee")
		}

		return taskRepo.UnassignUsers(taskID, uniqueUint64(userIDs))
	})
}

// RecordActivity appends an entry to the task's activity ledger. If the
// entry carries a status change, it is validated against the transition
// table and the task's status is updated in the same transaction. Entries
// without a status change are pure audit notes.
func (s *TaskService) RecordActivity(
	ctx context.Context,
	taskID, performedBy uint64,
	description string,
	statusChange *models.StatusChange,
	attachments []models.Attachment,
) (*models.TaskActivity, error) {
	if description == "" {
		return nil, apperrors.Validation("description", "activity description is required")
	}
	if len(description) > 200 {
		return nil, apperrors.Validation("description", "description cannot exceed 200 characters")
	}

	var activity *models.TaskActivity
	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)
		activityRepo := s.activityRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		task, err := taskRepo.FindByID(taskID)
		if err != nil {
			return notFoundOr("task", err)
		}

		performer, err := userRepo.FindByID(performedBy, false)
		if err != nil {
			return notFoundOr("performer", err)
		}
		if performer.DepartmentID != task.DepartmentID {
			return apperrors.Unauthorized("performer must belong to task department")
		}

		performerID := performer.ID
		activity = &models.TaskActivity{
			TaskID:      task.ID,
			PerformedBy: &performerID,
			Description: description,
			Attachments: attachments,
		}

		if statusChange != nil {
			change := *statusChange
			if change.From == "" {
				change.From = task.Status
			}
			if !models.IsValidStatus(change.From) {
				return apperrors.Validation("status_change.from", fmt.Sprintf("unknown status %q", change.From))
			}
			if !models.IsValidStatus(change.To) {
				return apperrors.Validation("status_change.to", fmt.Sprintf("unknown status %q", change.To))
			}
			if !models.IsValidTransition(change.From, change.To) {
				return apperrors.InvalidTransition(string(change.From), string(change.To))
			}

			activity.StatusFrom = &change.From
			activity.StatusTo = &change.To

			task.Status = change.To
			if err := taskRepo.Save(task); err != nil {
				return fmt.Errorf("failed to update task status: %w", err)
			}
		}

		if err := activityRepo.Create(activity); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return activity, nil
}

// ListActivities returns a task's ledger, newest first.
func (s *TaskService) ListActivities(taskID uint64) ([]models.TaskActivity, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		return nil, notFoundOr("task", err)
	}
	activities, err := s.activityRepo.FindByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// uniqueUint64 deduplicates IDs preserving order.
func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
