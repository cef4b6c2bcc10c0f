package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository.
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormDepartmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: tx}
}

// Create creates a new department.
func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// FindByID finds a department by ID.
func (r *GormDepartmentRepository) FindByID(id uint64, includeDeleted bool) (*models.Department, error) {
	var department models.Department
	if err := r.db.Scopes(visible(includeDeleted)).First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByName finds a department by name within a company.
func (r *GormDepartmentRepository) FindByName(companyID uint64, name string, includeDeleted bool) (*models.Department, error) {
	var department models.Department
	if err := r.db.Scopes(visible(includeDeleted)).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByCompany lists the departments owned by a company.
func (r *GormDepartmentRepository) FindByCompany(companyID uint64, includeDeleted bool) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.Scopes(visible(includeDeleted)).
		Where("company_id = ?", companyID).
		Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Save persists changes to a department.
func (r *GormDepartmentRepository) Save(department *models.Department) error {
	return r.db.Save(department).Error
}

// Delete physically removes a department row.
func (r *GormDepartmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Department{}, id).Error
}

// CountActiveMembers counts non-deleted users in the department.
func (r *GormDepartmentRepository) CountActiveMembers(departmentID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("department_id = ? AND is_deleted = ?", departmentID, false).
		Count(&count).Error
	return count, err
}
