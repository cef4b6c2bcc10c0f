package models

import "time"

// Department groups users and tasks inside a company. Name is unique per
// company. A department cannot be deleted while it has active members.
type Department struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_departments_company_name" json:"name"`
	Description string     `gorm:"type:varchar(300)" json:"description"`
	CompanyID   uint64     `gorm:"not null;uniqueIndex:idx_departments_company_name" json:"company_id"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Members []User  `gorm:"foreignKey:DepartmentID" json:"members,omitempty"`
}
