package models

import "time"

// Company is the tenant root. Everything else in the system is transitively
// owned by exactly one company.
type Company struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Address   string     `gorm:"type:varchar(100);not null" json:"address"`
	Phone     string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	IsDeleted bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Departments []Department        `gorm:"foreignKey:CompanyID" json:"departments,omitempty"`
	SuperAdmins []CompanySuperAdmin `gorm:"foreignKey:CompanyID" json:"super_admins,omitempty"`
}

// CompanySuperAdmin links a company to the users administering it. The user
// must belong to a department owned by the same company.
type CompanySuperAdmin struct {
	CompanyID uint64    `gorm:"primarykey" json:"company_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
