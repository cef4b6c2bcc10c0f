package models

import "time"

// validTransitions is the task status state machine: allowed `from -> to`
// moves. In Progress permits a self-transition for progress-note activities
// that restate the current status.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusToDo:       {StatusInProgress, StatusPending},
	StatusInProgress: {StatusInProgress, StatusCompleted, StatusPending},
	StatusCompleted:  {StatusPending, StatusInProgress},
	StatusPending:    {StatusInProgress, StatusCompleted},
}

// IsValidStatus reports whether s is a known task status.
func IsValidStatus(s TaskStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// IsValidTransition reports whether moving a task from one status to another
// is allowed by the state machine.
func IsValidTransition(from, to TaskStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// StatusChange records a status transition carried by an activity.
type StatusChange struct {
	From TaskStatus `json:"from"`
	To   TaskStatus `json:"to"`
}

// TaskActivity is an append-only ledger entry for a task. An activity with a
// status change is the only sanctioned way to move Task.Status; activities
// without one are pure audit notes.
type TaskActivity struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	TaskID      uint64 `gorm:"not null;index:idx_task_activities_task_created,priority:1" json:"task_id"`
	PerformedBy *uint64 `gorm:"index" json:"performed_by"`
	Description string `gorm:"type:varchar(200);not null" json:"description"`

	StatusFrom *TaskStatus `gorm:"type:varchar(20)" json:"status_from,omitempty"`
	StatusTo   *TaskStatus `gorm:"type:varchar(20)" json:"status_to,omitempty"`

	Attachments []Attachment `gorm:"serializer:json" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_task_activities_task_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task      Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

// Change returns the recorded status transition, or nil for audit notes.
func (a *TaskActivity) Change() *StatusChange {
	if a.StatusFrom == nil || a.StatusTo == nil {
		return nil
	}
	return &StatusChange{From: *a.StatusFrom, To: *a.StatusTo}
}
