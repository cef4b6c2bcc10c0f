package repository

import (
	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormTaskRepository) WithTx(tx *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: tx}
}

// Create creates a new task.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading.
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByDepartment lists every task of a department.
func (r *GormTaskRepository) FindByDepartment(departmentID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("department_id = ?", departmentID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByCreator lists every task authored by the user.
func (r *GormTaskRepository) FindByCreator(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("created_by_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering and pagination.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.department_id = ?", filter.DepartmentID)

	if filter.Kind != nil {
		query = query.Where("tasks.kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.CreatedByID != nil {
		query = query.Where("tasks.created_by_id = ?", *filter.CreatedByID)
	}
	if filter.AssignedUserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.due_date ASC, tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("CreatedBy").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Save persists changes to a task.
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete physically removes a task row.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// DeleteByDepartment physically removes every task of a department, together
// with their assignments.
func (r *GormTaskRepository) DeleteByDepartment(departmentID uint64) error {
	taskIDs := r.db.Model(&models.Task{}).
		Select("id").
		Where("department_id = ?", departmentID)

	if err := r.db.Where("task_id IN (?)", taskIDs).
		Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}

	return r.db.Where("department_id = ?", departmentID).
		Delete(&models.Task{}).Error
}

// NullifyCreator clears authorship on every task created by the user. This
// is a bulk update; per-row validation does not rerun (nulling a reference
// cannot introduce a new cross-department link).
func (r *GormTaskRepository) NullifyCreator(userID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("created_by_id = ?", userID).
		Update("created_by_id", nil).Error
}

// AssignUsers assigns multiple users to a task.
func (r *GormTaskRepository) AssignUsers(taskID uint64, userIDs []uint64) error {
	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

// UnassignUsers removes user assignments from a task.
func (r *GormTaskRepository) UnassignUsers(taskID uint64, userIDs []uint64) error {
	return r.db.Where("task_id = ? AND user_id IN ?", taskID, userIDs).
		Delete(&models.TaskAssignment{}).Error
}

// RemoveAssignmentsByUser detaches the user from every task it is assigned
// to. The tasks themselves are shared and stay in place.
func (r *GormTaskRepository) RemoveAssignmentsByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&models.TaskAssignment{}).Error
}

// RemoveAssignmentsByTask removes every assignment of a task.
func (r *GormTaskRepository) RemoveAssignmentsByTask(taskID uint64) error {
	return r.db.Where("task_id = ?", taskID).
		Delete(&models.TaskAssignment{}).Error
}

// CountDepartmentMembers counts how many of the given users are active
// members of the department.
func (r *GormTaskRepository) CountDepartmentMembers(userIDs []uint64, departmentID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("department_id = ? AND is_deleted = ? AND id IN ?", departmentID, false, userIDs).
		Count(&count).Error
	return count, err
}
