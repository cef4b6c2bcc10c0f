package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"gorm.io/gorm"
)

// EntityKind names a deletable root entity.
type EntityKind string

const (
	KindCompany    EntityKind = "company"
	KindDepartment EntityKind = "department"
	KindUser       EntityKind = "user"
	KindTask       EntityKind = "task"
)

// DeletionService orchestrates the soft- and hard-delete cascades. Every
// top-level call runs exactly one transaction; nested cascade steps reuse
// the caller's session. The store does not enforce the ownership graph, so
// cascade order (children before parents) is this service's responsibility.
type DeletionService struct {
	txManager    repository.TxManager
	companyRepo  repository.CompanyRepository
	deptRepo     repository.DepartmentRepository
	userRepo     repository.UserRepository
	taskRepo     repository.TaskRepository
	activityRepo repository.TaskActivityRepository
	routineRepo  repository.RoutineTaskRepository
	notifRepo    repository.NotificationRepository
	blobs        BlobStore
}

// NewDeletionService creates a new DeletionService.
func NewDeletionService(
	txManager repository.TxManager,
	companyRepo repository.CompanyRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	activityRepo repository.TaskActivityRepository,
	routineRepo repository.RoutineTaskRepository,
	notifRepo repository.NotificationRepository,
	blobs BlobStore,
) *DeletionService {
	return &DeletionService{
		txManager:    txManager,
		companyRepo:  companyRepo,
		deptRepo:     deptRepo,
		userRepo:     userRepo,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		routineRepo:  routineRepo,
		notifRepo:    notifRepo,
		blobs:        blobs,
	}
}

// sessionRepos bundles the repositories rebound to one transaction session.
type sessionRepos struct {
	companies  repository.CompanyRepository
	depts      repository.DepartmentRepository
	users      repository.UserRepository
	tasks      repository.TaskRepository
	activities repository.TaskActivityRepository
	routines   repository.RoutineTaskRepository
	notifs     repository.NotificationRepository
}

func (s *DeletionService) withTx(tx *gorm.DB) sessionRepos {
	return sessionRepos{
		companies:  s.companyRepo.WithTx(tx),
		depts:      s.deptRepo.WithTx(tx),
		users:      s.userRepo.WithTx(tx),
		tasks:      s.taskRepo.WithTx(tx),
		activities: s.activityRepo.WithTx(tx),
		routines:   s.routineRepo.WithTx(tx),
		notifs:     s.notifRepo.WithTx(tx),
	}
}

// SoftDelete marks the entity (and, for companies, its departments) deleted
// without removing storage. Supported roots: company, department, user.
// The returned value is the updated entity.
func (s *DeletionService) SoftDelete(ctx context.Context, kind EntityKind, id uint64) (interface{}, error) {
	var result interface{}
	var blobs []blobRef

	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		repos := s.withTx(tx)
		var err error
		switch kind {
		case KindCompany:
			result, err = s.softDeleteCompany(repos, id)
		case KindDepartment:
			result, err = s.softDeleteDepartment(repos, id)
		case KindUser:
			result, err = s.softDeleteUser(repos, id, &blobs)
		default:
			return apperrors.Validation("kind", fmt.Sprintf("%q cannot be soft-deleted", kind))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	cleanupBlobs(ctx, s.blobs, blobs)
	return result, nil
}

func (s *DeletionService) softDeleteCompany(repos sessionRepos, id uint64) (*models.Company, error) {
	company, err := repos.companies.FindByID(id, true)
	if err != nil {
		return nil, notFoundOr("company", err)
	}
	if company.IsDeleted {
		return nil, apperrors.AlreadyDeleted("company")
	}

	now := time.Now()
	departments, err := repos.depts.FindByCompany(company.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	// The company is the tenant boundary: its cascade marks departments
	// deleted directly, without the active-member guard that protects a
	// directly targeted department.
	for i := range departments {
		departments[i].IsDeleted = true
		departments[i].DeletedAt = &now
		if err := repos.depts.Save(&departments[i]); err != nil {
			return nil, fmt.Errorf("failed to soft-delete department %d: %w", departments[i].ID, err)
		}
	}

	company.IsDeleted = true
	company.DeletedAt = &now
	if err := repos.companies.Save(company); err != nil {
		return nil, fmt.Errorf("failed to soft-delete company: %w", err)
	}
	return company, nil
}

func (s *DeletionService) softDeleteDepartment(repos sessionRepos, id uint64) (*models.Department, error) {
	department, err := repos.depts.FindByID(id, true)
	if err != nil {
		return nil, notFoundOr("department", err)
	}
	if department.IsDeleted {
		return nil, apperrors.AlreadyDeleted("department")
	}

	active, err := repos.depts.CountActiveMembers(department.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if active > 0 {
		return nil, apperrors.CascadeBlocked(
			fmt.Sprintf("department has %d active member(s); reassign or delete them first", active))
	}

	now := time.Now()
	department.IsDeleted = true
	department.DeletedAt = &now
	if err := repos.depts.Save(department); err != nil {
		return nil, fmt.Errorf("failed to soft-delete department: %w", err)
	}
	return department, nil
}

func (s *DeletionService) softDeleteUser(repos sessionRepos, id uint64, blobs *[]blobRef) (*models.User, error) {
	user, err := repos.users.FindByID(id, true)
	if err != nil {
		return nil, notFoundOr("user", err)
	}
	if user.IsDeleted {
		return nil, apperrors.AlreadyDeleted("user")
	}

	now := time.Now()
	user.IsDeleted = true
	user.DeletedAt = &now
	user.IsActive = false
	user.ClearTokens()

	if user.Role == models.RoleSuperAdmin {
		if err := repos.companies.RemoveSuperAdminsByUser(user.ID); err != nil {
			return nil, fmt.Errorf("failed to detach super admin: %w", err)
		}
	}
	if err := repos.notifs.DeleteByUser(user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete notifications: %w", err)
	}

	// Authorship is nullified, not destroyed: the user's tasks, routine
	// logs, and ledger entries stay behind without an author.
	if err := repos.tasks.NullifyCreator(user.ID); err != nil {
		return nil, fmt.Errorf("failed to nullify task authorship: %w", err)
	}
	if err := repos.tasks.RemoveAssignmentsByUser(user.ID); err != nil {
		return nil, fmt.Errorf("failed to remove assignments: %w", err)
	}
	if err := repos.routines.NullifyPerformer(user.ID); err != nil {
		return nil, fmt.Errorf("failed to nullify routine performer: %w", err)
	}
	if err := repos.activities.NullifyPerformer(user.ID); err != nil {
		return nil, fmt.Errorf("failed to nullify activity performer: %w", err)
	}

	if user.ProfilePicture != nil && user.ProfilePicture.PublicID != "" {
		*blobs = append(*blobs, blobRef{PublicID: user.ProfilePicture.PublicID, Kind: "image"})
		user.ProfilePicture = nil
	}

	if err := repos.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to soft-delete user: %w", err)
	}
	return user, nil
}

// Restore reverses a soft delete. Tokens cleared at delete time stay
// cleared. Supported roots: company, department, user.
func (s *DeletionService) Restore(ctx context.Context, kind EntityKind, id uint64) (interface{}, error) {
	var result interface{}

	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		repos := s.withTx(tx)
		switch kind {
		case KindCompany:
			company, err := repos.companies.FindByID(id, true)
			if err != nil {
				return notFoundOr("company", err)
			}
			departments, err := repos.depts.FindByCompany(company.ID, true)
			if err != nil {
				return fmt.Errorf("failed to list departments: %w", err)
			}
			// The cascade stamped its departments with the company's own
			// DeletedAt. Only those come back; departments deleted on their
			// own before the cascade stay deleted.
			for i := range departments {
				if !departments[i].IsDeleted || departments[i].DeletedAt == nil {
					continue
				}
				if company.DeletedAt == nil || !departments[i].DeletedAt.Equal(*company.DeletedAt) {
					continue
				}
				departments[i].IsDeleted = false
				departments[i].DeletedAt = nil
				if err := repos.depts.Save(&departments[i]); err != nil {
					return fmt.Errorf("failed to restore department %d: %w", departments[i].ID, err)
				}
			}
			company.IsDeleted = false
			company.DeletedAt = nil
			if err := repos.companies.Save(company); err != nil {
				return fmt.Errorf("failed to restore company: %w", err)
			}
			result = company
			return nil

		case KindDepartment:
			department, err := repos.depts.FindByID(id, true)
			if err != nil {
				return notFoundOr("department", err)
			}
			if _, err := repos.companies.FindByID(department.CompanyID, false); err != nil {
				return apperrors.CascadeBlocked("owning company is deleted; restore it first")
			}
			department.IsDeleted = false
			department.DeletedAt = nil
			if err := repos.depts.Save(department); err != nil {
				return fmt.Errorf("failed to restore department: %w", err)
			}
			result = department
			return nil

		case KindUser:
			user, err := repos.users.FindByID(id, true)
			if err != nil {
				return notFoundOr("user", err)
			}
			if _, err := repos.depts.FindByID(user.DepartmentID, false); err != nil {
				return apperrors.CascadeBlocked("owning department is deleted; restore it first")
			}
			user.IsDeleted = false
			user.DeletedAt = nil
			user.IsActive = true
			if err := repos.users.Save(user); err != nil {
				return fmt.Errorf("failed to restore user: %w", err)
			}
			result = user
			return nil

		default:
			return apperrors.Validation("kind", fmt.Sprintf("%q cannot be restored", kind))
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HardDelete irreversibly removes the entity and every exclusively owned
// descendant in one transaction; children are always removed before their
// parent so a crash mid-cascade never leaves orphans. Blob deletions fire
// only after the commit succeeds.
func (s *DeletionService) HardDelete(ctx context.Context, kind EntityKind, id uint64) error {
	var blobs []blobRef

	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		repos := s.withTx(tx)
		switch kind {
		case KindCompany:
			return s.hardDeleteCompany(repos, id, &blobs)
		case KindDepartment:
			department, err := repos.depts.FindByID(id, true)
			if err != nil {
				return notFoundOr("department", err)
			}
			return s.hardDeleteDepartment(repos, department, &blobs)
		case KindUser:
			user, err := repos.users.FindByID(id, true)
			if err != nil {
				return notFoundOr("user", err)
			}
			return s.hardDeleteUser(repos, user, &blobs)
		case KindTask:
			task, err := repos.tasks.FindByID(id)
			if err != nil {
				return notFoundOr("task", err)
			}
			return s.hardDeleteTask(repos, task, &blobs)
		default:
			return apperrors.Validation("kind", fmt.Sprintf("%q cannot be hard-deleted", kind))
		}
	})
	if err != nil {
		return err
	}

	cleanupBlobs(ctx, s.blobs, blobs)
	return nil
}

func (s *DeletionService) hardDeleteCompany(repos sessionRepos, id uint64, blobs *[]blobRef) error {
	company, err := repos.companies.FindByID(id, true)
	if err != nil {
		return notFoundOr("company", err)
	}

	departments, err := repos.depts.FindByCompany(company.ID, true)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}
	for i := range departments {
		if err := s.hardDeleteDepartment(repos, &departments[i], blobs); err != nil {
			return err
		}
	}

	if err := repos.companies.DeleteSuperAdmins(company.ID); err != nil {
		return fmt.Errorf("failed to delete super admin links: %w", err)
	}
	if err := repos.companies.Delete(company.ID); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func (s *DeletionService) hardDeleteDepartment(repos sessionRepos, department *models.Department, blobs *[]blobRef) error {
	users, err := repos.users.FindByDepartment(department.ID, true)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}
	userIDs := make([]uint64, 0, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
		if pic := users[i].ProfilePicture; pic != nil && pic.PublicID != "" {
			*blobs = append(*blobs, blobRef{PublicID: pic.PublicID, Kind: "image"})
		}
		if err := repos.companies.RemoveSuperAdminsByUser(users[i].ID); err != nil {
			return fmt.Errorf("failed to detach super admin: %w", err)
		}
		if err := repos.tasks.RemoveAssignmentsByUser(users[i].ID); err != nil {
			return fmt.Errorf("failed to remove assignments: %w", err)
		}
	}

	activities, err := repos.activities.FindByDepartment(department.ID)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	activityIDs := make([]uint64, 0, len(activities))
	for i := range activities {
		activityIDs = append(activityIDs, activities[i].ID)
		collectAttachments(blobs, activities[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(activityIDs, models.LinkedTaskActivity); err != nil {
		return fmt.Errorf("failed to delete activity notifications: %w", err)
	}
	if err := repos.activities.DeleteByDepartment(department.ID); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	tasks, err := repos.tasks.FindByDepartment(department.ID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	taskIDs := make([]uint64, 0, len(tasks))
	for i := range tasks {
		taskIDs = append(taskIDs, tasks[i].ID)
		collectAttachments(blobs, tasks[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(taskIDs, models.LinkedTask); err != nil {
		return fmt.Errorf("failed to delete task notifications: %w", err)
	}
	if err := repos.tasks.DeleteByDepartment(department.ID); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	routines, err := repos.routines.FindByDepartment(department.ID)
	if err != nil {
		return fmt.Errorf("failed to list routine tasks: %w", err)
	}
	routineIDs := make([]uint64, 0, len(routines))
	for i := range routines {
		routineIDs = append(routineIDs, routines[i].ID)
		collectAttachments(blobs, routines[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(routineIDs, models.LinkedRoutineTask); err != nil {
		return fmt.Errorf("failed to delete routine notifications: %w", err)
	}
	if err := repos.routines.DeleteByDepartment(department.ID); err != nil {
		return fmt.Errorf("failed to delete routine tasks: %w", err)
	}

	if err := repos.notifs.DeleteByUsers(userIDs); err != nil {
		return fmt.Errorf("failed to delete member notifications: %w", err)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(userIDs, models.LinkedUser); err != nil {
		return fmt.Errorf("failed to delete user notifications: %w", err)
	}
	if err := repos.users.DeleteByDepartment(department.ID); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	if err := repos.depts.Delete(department.ID); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func (s *DeletionService) hardDeleteUser(repos sessionRepos, user *models.User, blobs *[]blobRef) error {
	// Exclusively owned leaf content is destroyed; shared memberships are
	// only detached.
	authored, err := repos.tasks.FindByCreator(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list authored tasks: %w", err)
	}
	for i := range authored {
		if err := s.hardDeleteTask(repos, &authored[i], blobs); err != nil {
			return err
		}
	}

	routines, err := repos.routines.FindByPerformer(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list routine tasks: %w", err)
	}
	routineIDs := make([]uint64, 0, len(routines))
	for i := range routines {
		routineIDs = append(routineIDs, routines[i].ID)
		collectAttachments(blobs, routines[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(routineIDs, models.LinkedRoutineTask); err != nil {
		return fmt.Errorf("failed to delete routine notifications: %w", err)
	}
	if err := repos.routines.DeleteByPerformer(user.ID); err != nil {
		return fmt.Errorf("failed to delete routine tasks: %w", err)
	}

	activities, err := repos.activities.FindByPerformer(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	activityIDs := make([]uint64, 0, len(activities))
	for i := range activities {
		activityIDs = append(activityIDs, activities[i].ID)
		collectAttachments(blobs, activities[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(activityIDs, models.LinkedTaskActivity); err != nil {
		return fmt.Errorf("failed to delete activity notifications: %w", err)
	}
	if err := repos.activities.DeleteByPerformer(user.ID); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	if err := repos.tasks.RemoveAssignmentsByUser(user.ID); err != nil {
		return fmt.Errorf("failed to remove assignments: %w", err)
	}
	if err := repos.companies.RemoveSuperAdminsByUser(user.ID); err != nil {
		return fmt.Errorf("failed to detach super admin: %w", err)
	}
	if err := repos.notifs.DeleteByUser(user.ID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	if err := repos.notifs.DeleteByLinkedDocument(user.ID, models.LinkedUser); err != nil {
		return fmt.Errorf("failed to delete linked notifications: %w", err)
	}

	if pic := user.ProfilePicture; pic != nil && pic.PublicID != "" {
		*blobs = append(*blobs, blobRef{PublicID: pic.PublicID, Kind: "image"})
	}

	if err := repos.users.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *DeletionService) hardDeleteTask(repos sessionRepos, task *models.Task, blobs *[]blobRef) error {
	activities, err := repos.activities.FindByTask(task.ID)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	activityIDs := make([]uint64, 0, len(activities))
	for i := range activities {
		activityIDs = append(activityIDs, activities[i].ID)
		collectAttachments(blobs, activities[i].Attachments)
	}
	if err := repos.notifs.DeleteByLinkedDocuments(activityIDs, models.LinkedTaskActivity); err != nil {
		return fmt.Errorf("failed to delete activity notifications: %w", err)
	}
	if err := repos.activities.DeleteByTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	if err := repos.notifs.DeleteByLinkedDocument(task.ID, models.LinkedTask); err != nil {
		return fmt.Errorf("failed to delete task notifications: %w", err)
	}
	if err := repos.tasks.RemoveAssignmentsByTask(task.ID); err != nil {
		return fmt.Errorf("failed to remove assignments: %w", err)
	}

	collectAttachments(blobs, task.Attachments)

	if err := repos.tasks.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func collectAttachments(blobs *[]blobRef, attachments []models.Attachment) {
	for _, id := range models.PublicIDs(attachments) {
		*blobs = append(*blobs, blobRef{PublicID: id, Kind: "raw"})
	}
}

// notFoundOr maps a record-not-found lookup to the typed NotFound error and
// wraps anything else.
func notFoundOr(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity)
	}
	return fmt.Errorf("failed to find %s: %w", entity, err)
}
