package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// GormTaskActivityRepository is a GORM implementation of TaskActivityRepository.
type GormTaskActivityRepository struct {
	db *gorm.DB
}

// NewTaskActivityRepository creates a new TaskActivityRepository.
func NewTaskActivityRepository(db *gorm.DB) TaskActivityRepository {
	return &GormTaskActivityRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormTaskActivityRepository) WithTx(tx *gorm.DB) TaskActivityRepository {
	return &GormTaskActivityRepository{db: tx}
}

// Create appends an activity to the ledger.
func (r *GormTaskActivityRepository) Create(activity *models.TaskActivity) error {
	return r.db.Create(activity).Error
}

// FindByTask lists a task's activities, newest first.
func (r *GormTaskActivityRepository) FindByTask(taskID uint64) ([]models.TaskActivity, error) {
	var activities []models.TaskActivity
	if err := r.db.Preload("Performer").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// FindByPerformer lists every activity the user performed.
func (r *GormTaskActivityRepository) FindByPerformer(userID uint64) ([]models.TaskActivity, error) {
	var activities []models.TaskActivity
	if err := r.db.Where("performed_by = ?", userID).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// FindByDepartment lists every activity belonging to tasks of a department.
func (r *GormTaskActivityRepository) FindByDepartment(departmentID uint64) ([]models.TaskActivity, error) {
	var activities []models.TaskActivity
	taskIDs := r.db.Model(&models.Task{}).
		Select("id").
		Where("department_id = ?", departmentID)

	if err := r.db.Where("task_id IN (?)", taskIDs).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// DeleteByTask removes every activity of a task.
func (r *GormTaskActivityRepository) DeleteByTask(taskID uint64) error {
	return r.db.Where("task_id = ?", taskID).
		Delete(&models.TaskActivity{}).Error
}

// DeleteByPerformer removes every activity the user performed.
func (r *GormTaskActivityRepository) DeleteByPerformer(userID uint64) error {
	return r.db.Where("performed_by = ?", userID).
		Delete(&models.TaskActivity{}).Error
}

// DeleteByDepartment removes every activity belonging to tasks of a
// department.
func (r *GormTaskActivityRepository) DeleteByDepartment(departmentID uint64) error {
	taskIDs := r.db.Model(&models.Task{}).
		Select("id").
		Where("department_id = ?", departmentID)

	return r.db.Where("task_id IN (?)", taskIDs).
		Delete(&models.TaskActivity{}).Error
}

// NullifyPerformer clears the performer on every activity the user made.
func (r *GormTaskActivityRepository) NullifyPerformer(userID uint64) error {
	return r.db.Model(&models.TaskActivity{}).
		Where("performed_by = ?", userID).
		Update("performed_by", nil).Error
}
