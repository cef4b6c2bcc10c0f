package dto

import (
	"time"

	"github.com/girmesh03/taskforce/internal/models"
)

// CompanyDTO represents a company in API responses.
type CompanyDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// DepartmentDTO represents a department in API responses.
type DepartmentDTO struct {
	ID          uint64    `json:"id"`
	CompanyID   uint64    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// TenantDTO is the response for company subscription: the company, its
// initial department and the super admin account created with it.
type TenantDTO struct {
	Company    CompanyDTO    `json:"company"`
	Department DepartmentDTO `json:"department"`
	Admin      UserDTO       `json:"admin"`
}

// ToCompanyDTO converts a company to its API representation.
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		Address:   company.Address,
		Phone:     company.Phone,
		Email:     company.Email,
		IsDeleted: company.IsDeleted,
		CreatedAt: company.CreatedAt,
	}
}

// ToDepartmentDTO converts a department to its API representation.
func ToDepartmentDTO(department models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:          department.ID,
		CompanyID:   department.CompanyID,
		Name:        department.Name,
		Description: department.Description,
		IsDeleted:   department.IsDeleted,
		CreatedAt:   department.CreatedAt,
	}
}

// ToDepartmentDTOs converts a slice of departments.
func ToDepartmentDTOs(departments []models.Department) []DepartmentDTO {
	dtos := make([]DepartmentDTO, len(departments))
	for i, department := range departments {
		dtos[i] = ToDepartmentDTO(department)
	}
	return dtos
}
