package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// GormRoutineTaskRepository is a GORM implementation of RoutineTaskRepository.
type GormRoutineTaskRepository struct {
	db *gorm.DB
}

// NewRoutineTaskRepository creates a new RoutineTaskRepository.
func NewRoutineTaskRepository(db *gorm.DB) RoutineTaskRepository {
	return &GormRoutineTaskRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormRoutineTaskRepository) WithTx(tx *gorm.DB) RoutineTaskRepository {
	return &GormRoutineTaskRepository{db: tx}
}

// Create creates a new routine task log.
func (r *GormRoutineTaskRepository) Create(routine *models.RoutineTask) error {
	return r.db.Create(routine).Error
}

// FindByID finds a routine task by ID.
func (r *GormRoutineTaskRepository) FindByID(id uint64) (*models.RoutineTask, error) {
	var routine models.RoutineTask
	if err := r.db.First(&routine, id).Error; err != nil {
		return nil, err
	}
	return &routine, nil
}

// FindByPerformer lists every routine task the user performed.
func (r *GormRoutineTaskRepository) FindByPerformer(userID uint64) ([]models.RoutineTask, error) {
	var routines []models.RoutineTask
	if err := r.db.Where("performed_by = ?", userID).
		Find(&routines).Error; err != nil {
		return nil, err
	}
	return routines, nil
}

// FindByDepartment lists the routine tasks of a department, newest first.
func (r *GormRoutineTaskRepository) FindByDepartment(departmentID uint64) ([]models.RoutineTask, error) {
	var routines []models.RoutineTask
	if err := r.db.Where("department_id = ?", departmentID).
		Order("date DESC").
		Find(&routines).Error; err != nil {
		return nil, err
	}
	return routines, nil
}

// Save persists changes to a routine task.
func (r *GormRoutineTaskRepository) Save(routine *models.RoutineTask) error {
	return r.db.Save(routine).Error
}

// Delete physically removes a routine task row.
func (r *GormRoutineTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.RoutineTask{}, id).Error
}

// DeleteByPerformer physically removes every routine task the user performed.
func (r *GormRoutineTaskRepository) DeleteByPerformer(userID uint64) error {
	return r.db.Where("performed_by = ?", userID).
		Delete(&models.RoutineTask{}).Error
}

// DeleteByDepartment physically removes every routine task of a department.
func (r *GormRoutineTaskRepository) DeleteByDepartment(departmentID uint64) error {
	return r.db.Where("department_id = ?", departmentID).
		Delete(&models.RoutineTask{}).Error
}

// NullifyPerformer clears the performer on every routine task the user made.
func (r *GormRoutineTaskRepository) NullifyPerformer(userID uint64) error {
	return r.db.Model(&models.RoutineTask{}).
		Where("performed_by = ?", userID).
		Update("performed_by", nil).Error
}
