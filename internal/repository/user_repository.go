package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GormUserRepository{db: tx}
}

// Create creates a new user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID.
func (r *GormUserRepository) FindByID(id uint64, includeDeleted bool) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(visible(includeDeleted)).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *GormUserRepository) FindByEmail(email string, includeDeleted bool) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(visible(includeDeleted)).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByDepartment lists the users belonging to a department.
func (r *GormUserRepository) FindByDepartment(departmentID uint64, includeDeleted bool) ([]models.User, error) {
	var users []models.User
	if err := r.db.Scopes(visible(includeDeleted)).
		Where("department_id = ?", departmentID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save persists changes to a user.
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete physically removes a user row.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}

// DeleteByDepartment physically removes every user of a department.
func (r *GormUserRepository) DeleteByDepartment(departmentID uint64) error {
	return r.db.Where("department_id = ?", departmentID).
		Delete(&models.User{}).Error
}
