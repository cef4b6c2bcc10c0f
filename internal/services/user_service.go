package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/girmesh03/taskforce/internal/constants"
	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles user provisioning after tenant setup. Users created
// here pass the same referential checks as the tenant's first admin.
type UserService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository) *UserService {
	return &UserService{userRepo: userRepo, deptRepo: deptRepo}
}

// CreateUserInput represents input for creating a user in a department.
type CreateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Role         models.UserRole
	Position     string
	DepartmentID uint64
}

// Create provisions a user in an existing, non-deleted department.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, apperrors.Validation("name", "first and last name are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperrors.Validation("password",
			fmt.Sprintf("password must be at least %d characters long", constants.MinPasswordLength))
	}
	switch input.Role {
	case models.RoleSuperAdmin, models.RoleManager, models.RoleUser:
	default:
		return nil, apperrors.Validation("role", "role must be SuperAdmin, Manager, or User")
	}
	if input.Position == "" {
		return nil, apperrors.Validation("position", "position is required")
	}

	email := utils.NormalizeEmail(input.Email)
	if _, err := s.userRepo.FindByEmail(email, false); err == nil {
		return nil, apperrors.Conflict("email", "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.deptRepo.FindByID(input.DepartmentID, false); err != nil {
		return nil, notFoundOr("department", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationExpiry := time.Now().Add(constants.VerificationTokenTTL)
	user := &models.User{
		FirstName:               utils.CapitalizeWords(input.FirstName),
		LastName:                utils.CapitalizeWords(input.LastName),
		Email:                   email,
		PasswordHash:            string(hashedPassword),
		Role:                    input.Role,
		Position:                utils.CapitalizeWords(input.Position),
		DepartmentID:            input.DepartmentID,
		IsActive:                true,
		VerificationToken:       utils.GenerateToken(),
		VerificationTokenExpiry: &verificationExpiry,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Get returns a non-deleted user.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, false)
	if err != nil {
		return nil, notFoundOr("user", err)
	}
	return user, nil
}

// ListByDepartment lists a department's non-deleted users.
func (s *UserService) ListByDepartment(departmentID uint64) ([]models.User, error) {
	users, err := s.userRepo.FindByDepartment(departmentID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
