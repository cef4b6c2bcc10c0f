package models

import "time"

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusPending    TaskStatus = "Pending"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// TaskKind discriminates the task variants stored in the single tasks table.
type TaskKind string

const (
	// KindBasic is a plain departmental task.
	KindBasic TaskKind = "basic"
	// KindAssigned adds an assignee set and materials used.
	KindAssigned TaskKind = "assigned"
	// KindProject adds external client contact information.
	KindProject TaskKind = "project"
)

// ClientInfo holds the external contact attached to project tasks.
type ClientInfo struct {
	Name    string `gorm:"type:varchar(100)" json:"name"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Address string `gorm:"type:varchar(100)" json:"address"`
}

// Task is the common record of the tagged union; Kind selects which of the
// variant payloads (Assignments/MaterialsUsed for assigned tasks, ClientInfo
// for project tasks) is meaningful. Task.Status is only ever written through
// the activity ledger.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Kind        TaskKind     `gorm:"type:varchar(20);not null;default:'basic'" json:"kind"`
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Description string       `gorm:"type:varchar(200)" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	Location    string       `gorm:"type:varchar(100)" json:"location"`
	DueDate     time.Time    `gorm:"not null" json:"due_date"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`

	// CreatedByID is nullable: soft-deleting a user nullifies authorship
	// instead of destroying the task.
	CreatedByID  *uint64 `gorm:"index" json:"created_by_id"`
	DepartmentID uint64  `gorm:"not null;index" json:"department_id"`

	MaterialsUsed []MaterialUsage `gorm:"serializer:json" json:"materials_used,omitempty"`
	Attachments   []Attachment    `gorm:"serializer:json" json:"attachments,omitempty"`
	ClientInfo    ClientInfo      `gorm:"embedded;embeddedPrefix:client_" json:"client_info,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy   *User            `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Department  Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Activities  []TaskActivity   `gorm:"foreignKey:TaskID" json:"activities,omitempty"`
}
