package models

import "time"

// LinkedDocumentType names the kind of document a notification points at.
type LinkedDocumentType string

const (
	LinkedTask         LinkedDocumentType = "Task"
	LinkedTaskActivity LinkedDocumentType = "TaskActivity"
	LinkedRoutineTask  LinkedDocumentType = "RoutineTask"
	LinkedUser         LinkedDocumentType = "User"
)

// Notification is a tenant-scoped record pointing at a linked document by id
// and type; it is removed in the same transaction as that document.
type Notification struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	UserID  uint64 `gorm:"not null;index" json:"user_id"`
	Message string `gorm:"type:varchar(300);not null" json:"message"`

	LinkedDocumentID   uint64             `gorm:"not null;index:idx_notifications_linked,priority:1" json:"linked_document_id"`
	LinkedDocumentType LinkedDocumentType `gorm:"type:varchar(30);not null;index:idx_notifications_linked,priority:2" json:"linked_document_type"`

	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
