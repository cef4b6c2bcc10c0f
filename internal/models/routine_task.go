package models

import (
	"math"
	"time"
)

// PerformedItem is one sub-item of a routine task log.
type PerformedItem struct {
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// RoutineTask is a dated log entry owned by a department. Progress is derived
// from the completion flags of its performed items.
type RoutineTask struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	DepartmentID uint64  `gorm:"not null;index:idx_routine_tasks_department_date,priority:1" json:"department_id"`
	PerformedBy  *uint64 `gorm:"index" json:"performed_by"`

	Date           time.Time       `gorm:"not null;index:idx_routine_tasks_department_date,priority:2" json:"date"`
	PerformedTasks []PerformedItem `gorm:"serializer:json" json:"performed_tasks"`
	Progress       int             `gorm:"not null;default:0" json:"progress"`
	Attachments    []Attachment    `gorm:"serializer:json" json:"attachments,omitempty"`
	MaterialsUsed  []MaterialUsage `gorm:"serializer:json" json:"materials_used,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Performer  *User      `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

// RecalculateProgress derives the progress percentage from the performed
// items. An empty list yields 0.
func (r *RoutineTask) RecalculateProgress() {
	total := len(r.PerformedTasks)
	if total == 0 {
		r.Progress = 0
		return
	}
	completed := 0
	for _, item := range r.PerformedTasks {
		if item.IsCompleted {
			completed++
		}
	}
	r.Progress = int(math.Round(float64(completed) / float64(total) * 100))
}
