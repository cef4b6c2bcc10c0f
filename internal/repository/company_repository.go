package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormCompanyRepository) WithTx(tx *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: tx}
}

// Create creates a new company.
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID.
func (r *GormCompanyRepository) FindByID(id uint64, includeDeleted bool) (*models.Company, error) {
	var company models.Company
	if err := r.db.Scopes(visible(includeDeleted)).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByName finds a company by name.
func (r *GormCompanyRepository) FindByName(name string, includeDeleted bool) (*models.Company, error) {
	return r.findByField("name", name, includeDeleted)
}

// FindByEmail finds a company by email.
func (r *GormCompanyRepository) FindByEmail(email string, includeDeleted bool) (*models.Company, error) {
	return r.findByField("email", email, includeDeleted)
}

// FindByPhone finds a company by phone number.
func (r *GormCompanyRepository) FindByPhone(phone string, includeDeleted bool) (*models.Company, error) {
	return r.findByField("phone", phone, includeDeleted)
}

func (r *GormCompanyRepository) findByField(field, value string, includeDeleted bool) (*models.Company, error) {
	var company models.Company
	if err := r.db.Scopes(visible(includeDeleted)).
		Where(field+" = ?", value).
		First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Save persists changes to a company.
func (r *GormCompanyRepository) Save(company *models.Company) error {
	return r.db.Save(company).Error
}

// Delete physically removes a company row. Cascading is the deletion
// engine's responsibility, not the repository's.
func (r *GormCompanyRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Company{}, id).Error
}

// AddSuperAdmin links a user as super admin of a company.
func (r *GormCompanyRepository) AddSuperAdmin(link *models.CompanySuperAdmin) error {
	return r.db.Create(link).Error
}

// RemoveSuperAdminsByUser detaches the user from every company admin list.
func (r *GormCompanyRepository) RemoveSuperAdminsByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&models.CompanySuperAdmin{}).Error
}

// ListSuperAdmins lists the super admin links of a company.
func (r *GormCompanyRepository) ListSuperAdmins(companyID uint64) ([]models.CompanySuperAdmin, error) {
	var links []models.CompanySuperAdmin
	if err := r.db.Preload("User").
		Where("company_id = ?", companyID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteSuperAdmins removes all super admin links of a company.
func (r *GormCompanyRepository) DeleteSuperAdmins(companyID uint64) error {
	return r.db.Where("company_id = ?", companyID).
		Delete(&models.CompanySuperAdmin{}).Error
}
