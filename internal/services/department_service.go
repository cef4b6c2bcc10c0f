package services

import (
	"errors"
	"fmt"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/utils"
	"gorm.io/gorm"
)

// DepartmentService handles department business logic after tenant setup.
// Departments created here pass the same referential checks as the ones
// built by the tenant graph builder.
type DepartmentService struct {
	deptRepo    repository.DepartmentRepository
	companyRepo repository.CompanyRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(deptRepo repository.DepartmentRepository, companyRepo repository.CompanyRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo, companyRepo: companyRepo}
}

// DepartmentInput represents input for creating or renaming a department.
type DepartmentInput struct {
	Name        string
	Description string
	CompanyID   uint64
}

func (s *DepartmentService) validateInput(input *DepartmentInput) error {
	if len(input.Name) < 2 {
		return apperrors.Validation("name", "department name must be at least 2 characters long")
	}
	if len(input.Name) > 50 {
		return apperrors.Validation("name", "department name cannot exceed 50 characters")
	}
	if len(input.Description) > 300 {
		return apperrors.Validation("description", "description cannot exceed 300 characters")
	}
	input.Name = utils.CapitalizeWords(input.Name)
	if input.Description != "" {
		input.Description = utils.CapitalizeWords(input.Description)
	}
	return nil
}

// Create adds a department to an existing, non-deleted company.
func (s *DepartmentService) Create(input DepartmentInput) (*models.Department, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByID(input.CompanyID, false); err != nil {
		return nil, notFoundOr("company", err)
	}

	if _, err := s.deptRepo.FindByName(input.CompanyID, input.Name, false); err == nil {
		return nil, apperrors.Conflict("name", "department name already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check department name: %w", err)
	}

	department := &models.Department{
		Name:        input.Name,
		Description: input.Description,
		CompanyID:   input.CompanyID,
	}
	if err := s.deptRepo.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return department, nil
}

// Get returns a non-deleted department.
func (s *DepartmentService) Get(id uint64) (*models.Department, error) {
	department, err := s.deptRepo.FindByID(id, false)
	if err != nil {
		return nil, notFoundOr("department", err)
	}
	return department, nil
}

// ListByCompany lists a company's non-deleted departments.
func (s *DepartmentService) ListByCompany(companyID uint64) ([]models.Department, error) {
	departments, err := s.deptRepo.FindByCompany(companyID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// Update renames a department or changes its description.
func (s *DepartmentService) Update(id uint64, input DepartmentInput) (*models.Department, error) {
	department, err := s.deptRepo.FindByID(id, false)
	if err != nil {
		return nil, notFoundOr("department", err)
	}

	input.CompanyID = department.CompanyID
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	if input.Name != department.Name {
		if _, err := s.deptRepo.FindByName(department.CompanyID, input.Name, false); err == nil {
			return nil, apperrors.Conflict("name", "department name already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check department name: %w", err)
		}
	}

	department.Name = input.Name
	department.Description = input.Description
	if err := s.deptRepo.Save(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return department, nil
}
