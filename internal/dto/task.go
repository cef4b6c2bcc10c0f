package dto

import (
	"time"

	"github.com/girmesh03/taskforce/internal/models"
)

// TaskDTO represents a task in API responses. Variant fields are only set for
// the kind that carries them.
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Kind         models.TaskKind     `json:"kind"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Location     string              `json:"location"`
	DueDate      time.Time           `json:"due_date"`
	Priority     models.TaskPriority `json:"priority"`
	CreatedByID  *uint64             `json:"created_by_id"`
	DepartmentID uint64              `json:"department_id"`

	AssignedTo    []UserDTO              `json:"assigned_to,omitempty"`
	MaterialsUsed []models.MaterialUsage `json:"materials_used,omitempty"`
	ClientInfo    *models.ClientInfo     `json:"client_info,omitempty"`
	Attachments   []models.Attachment    `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskActivityDTO represents one activity ledger entry.
type TaskActivityDTO struct {
	ID           uint64               `json:"id"`
	TaskID       uint64               `json:"task_id"`
	PerformedBy  *uint64              `json:"performed_by"`
	Description  string               `json:"description"`
	StatusChange *models.StatusChange `json:"status_change,omitempty"`
	Attachments  []models.Attachment  `json:"attachments,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// RoutineTaskDTO represents a routine task log entry.
type RoutineTaskDTO struct {
	ID             uint64                 `json:"id"`
	DepartmentID   uint64                 `json:"department_id"`
	PerformedBy    *uint64                `json:"performed_by"`
	Date           time.Time              `json:"date"`
	PerformedTasks []models.PerformedItem `json:"performed_tasks"`
	Progress       int                    `json:"progress"`
	Attachments    []models.Attachment    `json:"attachments,omitempty"`
	MaterialsUsed  []models.MaterialUsage `json:"materials_used,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NotificationDTO represents a notification in API responses.
type NotificationDTO struct {
	ID                 uint64                    `json:"id"`
	Message            string                    `json:"message"`
	LinkedDocumentID   uint64                    `json:"linked_document_id"`
	LinkedDocumentType models.LinkedDocumentType `json:"linked_document_type"`
	IsRead             bool                      `json:"is_read"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// ToTaskDTO converts a task to its API representation.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Kind:         task.Kind,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Location:     task.Location,
		DueDate:      task.DueDate,
		Priority:     task.Priority,
		CreatedByID:  task.CreatedByID,
		DepartmentID: task.DepartmentID,
		Attachments:  task.Attachments,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
	switch task.Kind {
	case models.KindAssigned:
		dto.MaterialsUsed = task.MaterialsUsed
		for _, assignment := range task.Assignments {
			if assignment.User.ID != 0 {
				dto.AssignedTo = append(dto.AssignedTo, ToUserDTO(assignment.User))
			}
		}
	case models.KindProject:
		info := task.ClientInfo
		dto.ClientInfo = &info
	}
	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskActivityDTO converts an activity to its API representation.
func ToTaskActivityDTO(activity models.TaskActivity) TaskActivityDTO {
	return TaskActivityDTO{
		ID:           activity.ID,
		TaskID:       activity.TaskID,
		PerformedBy:  activity.PerformedBy,
		Description:  activity.Description,
		StatusChange: activity.Change(),
		Attachments:  activity.Attachments,
		CreatedAt:    activity.CreatedAt,
	}
}

// ToTaskActivityDTOs converts a slice of activities.
func ToTaskActivityDTOs(activities []models.TaskActivity) []TaskActivityDTO {
	dtos := make([]TaskActivityDTO, len(activities))
	for i, activity := range activities {
		dtos[i] = ToTaskActivityDTO(activity)
	}
	return dtos
}

// ToRoutineTaskDTO converts a routine task to its API representation.
func ToRoutineTaskDTO(routine models.RoutineTask) RoutineTaskDTO {
	return RoutineTaskDTO{
		ID:             routine.ID,
		DepartmentID:   routine.DepartmentID,
		PerformedBy:    routine.PerformedBy,
		Date:           routine.Date,
		PerformedTasks: routine.PerformedTasks,
		Progress:       routine.Progress,
		Attachments:    routine.Attachments,
		MaterialsUsed:  routine.MaterialsUsed,
		CreatedAt:      routine.CreatedAt,
	}
}

// ToRoutineTaskDTOs converts a slice of routine tasks.
func ToRoutineTaskDTOs(routines []models.RoutineTask) []RoutineTaskDTO {
	dtos := make([]RoutineTaskDTO, len(routines))
	for i, routine := range routines {
		dtos[i] = ToRoutineTaskDTO(routine)
	}
	return dtos
}

// ToNotificationDTO converts a notification to its API representation.
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:                 notification.ID,
		Message:            notification.Message,
		LinkedDocumentID:   notification.LinkedDocumentID,
		LinkedDocumentType: notification.LinkedDocumentType,
		IsRead:             notification.IsRead,
		CreatedAt:          notification.CreatedAt,
	}
}

// ToNotificationDTOs converts a slice of notifications.
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = ToNotificationDTO(notification)
	}
	return dtos
}
