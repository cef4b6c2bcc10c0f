package dto

import (
	"time"

	"github.com/girmesh03/taskforce/internal/models"
)

// UserDTO represents a user in API responses. Password and token fields are
// never exposed.
type UserDTO struct {
	ID             uint64             `json:"id"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	FullName       string             `json:"full_name"`
	Email          string             `json:"email"`
	Role           models.UserRole    `json:"role"`
	Position       string             `json:"position"`
	DepartmentID   uint64             `json:"department_id"`
	ProfilePicture *models.Attachment `json:"profile_picture,omitempty"`
	IsVerified     bool               `json:"is_verified"`
	IsActive       bool               `json:"is_active"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ToUserDTO converts a user to its API representation.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Email:          user.Email,
		Role:           user.Role,
		Position:       user.Position,
		DepartmentID:   user.DepartmentID,
		ProfilePicture: user.ProfilePicture,
		IsVerified:     user.IsVerified,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
