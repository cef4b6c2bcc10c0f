package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "SuperAdmin"
	RoleManager    UserRole = "Manager"
	RoleUser       UserRole = "User"
)

// User belongs to exactly one department at any time. Token fields are
// write-only state cleared on soft delete; expiry-based cleanup is handled
// by the store's TTL mechanism, not by the engine.
type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	FirstName    string   `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string   `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Position     string   `gorm:"type:varchar(100);not null" json:"position"`
	DepartmentID uint64   `gorm:"not null;index" json:"department_id"`

	ProfilePicture *Attachment `gorm:"serializer:json" json:"profile_picture,omitempty"`

	IsVerified bool       `gorm:"not null;default:false" json:"is_verified"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
	IsDeleted  bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	VerificationToken       string     `gorm:"type:varchar(255)" json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`
	ResetPasswordToken      string     `gorm:"type:varchar(255)" json:"-"`
	ResetPasswordExpiry     *time.Time `json:"-"`
	RefreshToken            string     `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// FullName joins the user's first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ClearTokens wipes all session and recovery tokens. Called on soft delete
// and logout; restore never brings these back.
func (u *User) ClearTokens() {
	u.VerificationToken = ""
	u.VerificationTokenExpiry = nil
	u.ResetPasswordToken = ""
	u.ResetPasswordExpiry = nil
	u.RefreshToken = ""
}
