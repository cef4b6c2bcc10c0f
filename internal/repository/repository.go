package repository

import (
	"context"
	"time"

	"github.com/girmesh03/taskforce/internal/models"
	"gorm.io/gorm"
)

// TxManager is the store adapter's transaction primitive. All engine
// operations run inside exactly one WithTransaction call; nested cascade
// steps reuse the session by rebinding repositories with WithTx.
type TxManager interface {
	// WithTransaction runs fn inside a transaction. fn returning an error
	// aborts; otherwise the transaction commits. Infrastructure failures
	// surface as a TransactionAbort engine error, business errors from fn
	// pass through unchanged.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CompanyRepository defines data access for companies and their super admin
// links. Read methods take includeDeleted so the soft-delete visibility rule
// stays explicit at every call site.
type CompanyRepository interface {
	// WithTx returns a repository bound to the given transaction session.
	WithTx(tx *gorm.DB) CompanyRepository

	Create(company *models.Company) error
	FindByID(id uint64, includeDeleted bool) (*models.Company, error)
	FindByName(name string, includeDeleted bool) (*models.Company, error)
	FindByEmail(email string, includeDeleted bool) (*models.Company, error)
	FindByPhone(phone string, includeDeleted bool) (*models.Company, error)
	Save(company *models.Company) error
	Delete(id uint64) error

	AddSuperAdmin(link *models.CompanySuperAdmin) error
	RemoveSuperAdminsByUser(userID uint64) error
	ListSuperAdmins(companyID uint64) ([]models.CompanySuperAdmin, error)
	DeleteSuperAdmins(companyID uint64) error
}

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	WithTx(tx *gorm.DB) DepartmentRepository

	Create(department *models.Department) error
	FindByID(id uint64, includeDeleted bool) (*models.Department, error)
	FindByName(companyID uint64, name string, includeDeleted bool) (*models.Department, error)
	FindByCompany(companyID uint64, includeDeleted bool) ([]models.Department, error)
	Save(department *models.Department) error
	Delete(id uint64) error

	// CountActiveMembers counts non-deleted users belonging to the department.
	CountActiveMembers(departmentID uint64) (int64, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository

	Create(user *models.User) error
	FindByID(id uint64, includeDeleted bool) (*models.User, error)
	FindByEmail(email string, includeDeleted bool) (*models.User, error)
	FindByDepartment(departmentID uint64, includeDeleted bool) ([]models.User, error)
	Save(user *models.User) error
	Delete(id uint64) error
	DeleteByDepartment(departmentID uint64) error
}

// TaskFilter holds filtering options for listing tasks.
type TaskFilter struct {
	DepartmentID   uint64
	Kind           *models.TaskKind
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	CreatedByID    *uint64
	AssignedUserID *uint64
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	Page           int
	PageSize       int
}

// TaskRepository defines data access for tasks and their assignments.
type TaskRepository interface {
	WithTx(tx *gorm.DB) TaskRepository

	Create(task *models.Task) error
	FindByID(id uint64, preload ...string) (*models.Task, error)
	FindByDepartment(departmentID uint64) ([]models.Task, error)
	FindByCreator(userID uint64) ([]models.Task, error)
	List(filter TaskFilter) ([]models.Task, int64, error)
	Save(task *models.Task) error
	Delete(id uint64) error
	DeleteByDepartment(departmentID uint64) error

	// NullifyCreator clears authorship on every task created by the user.
	NullifyCreator(userID uint64) error

	AssignUsers(taskID uint64, userIDs []uint64) error
	UnassignUsers(taskID uint64, userIDs []uint64) error
	RemoveAssignmentsByUser(userID uint64) error
	RemoveAssignmentsByTask(taskID uint64) error

	// CountDepartmentMembers counts how many of the given users are active
	// members of the department.
	CountDepartmentMembers(userIDs []uint64, departmentID uint64) (int64, error)
}

// TaskActivityRepository defines data access for the append-only activity
// ledger. Activities are never updated once written.
type TaskActivityRepository interface {
	WithTx(tx *gorm.DB) TaskActivityRepository

	Create(activity *models.TaskActivity) error
	FindByTask(taskID uint64) ([]models.TaskActivity, error)
	FindByPerformer(userID uint64) ([]models.TaskActivity, error)
	FindByDepartment(departmentID uint64) ([]models.TaskActivity, error)
	DeleteByTask(taskID uint64) error
	DeleteByPerformer(userID uint64) error
	DeleteByDepartment(departmentID uint64) error

	// NullifyPerformer clears the performer on every activity the user made.
	NullifyPerformer(userID uint64) error
}

// RoutineTaskRepository defines data access for routine task logs.
type RoutineTaskRepository interface {
	WithTx(tx *gorm.DB) RoutineTaskRepository

	Create(routine *models.RoutineTask) error
	FindByID(id uint64) (*models.RoutineTask, error)
	FindByPerformer(userID uint64) ([]models.RoutineTask, error)
	FindByDepartment(departmentID uint64) ([]models.RoutineTask, error)
	Save(routine *models.RoutineTask) error
	Delete(id uint64) error
	DeleteByPerformer(userID uint64) error
	DeleteByDepartment(departmentID uint64) error
	NullifyPerformer(userID uint64) error
}

// NotificationRepository defines data access for notifications. Deleting by
// linked document is invoked inside the owning entity's transaction.
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository

	Create(notification *models.Notification) error
	ListByUser(userID uint64, page, limit int) ([]models.Notification, int64, error)
	MarkRead(id, userID uint64) error
	DeleteByUser(userID uint64) error
	DeleteByUsers(userIDs []uint64) error
	DeleteByLinkedDocument(id uint64, docType models.LinkedDocumentType) error
	DeleteByLinkedDocuments(ids []uint64, docType models.LinkedDocumentType) error
}
