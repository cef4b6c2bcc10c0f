package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"gorm.io/gorm"
)

// RoutineTaskService handles routine task log business logic.
type RoutineTaskService struct {
	txManager   repository.TxManager
	routineRepo repository.RoutineTaskRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
	blobs       BlobStore
}

// NewRoutineTaskService creates a new RoutineTaskService.
func NewRoutineTaskService(
	txManager repository.TxManager,
	routineRepo repository.RoutineTaskRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	blobs BlobStore,
) *RoutineTaskService {
	return &RoutineTaskService{
		txManager:   txManager,
		routineRepo: routineRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		blobs:       blobs,
	}
}

// RoutineTaskInput represents input for creating or updating a routine log.
type RoutineTaskInput struct {
	DepartmentID   uint64
	PerformedBy    uint64
	Date           time.Time
	PerformedTasks []models.PerformedItem
	Attachments    []models.Attachment
	MaterialsUsed  []models.MaterialUsage
}

func (s *RoutineTaskService) validateInput(input *RoutineTaskInput) error {
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.Date.After(time.Now()) {
		return apperrors.Validation("date", "log date cannot be in the future")
	}
	if len(input.PerformedTasks) == 0 {
		return apperrors.Validation("performed_tasks", "at least one performed task is required")
	}
	for i, item := range input.PerformedTasks {
		if item.Description == "" {
			return apperrors.Validation("performed_tasks", fmt.Sprintf("performed_tasks[%d]: description is required", i))
		}
	}
	if err := models.ValidateMaterials(input.MaterialsUsed); err != nil {
		return apperrors.Validation("materials_used", err.Error())
	}
	return nil
}

// Create records a new routine task log. The performer must be an active
// member of the log's department; progress is derived from the sub-items.
func (s *RoutineTaskService) Create(ctx context.Context, input RoutineTaskInput) (*models.RoutineTask, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	performer, err := s.userRepo.FindByID(input.PerformedBy, false)
	if err != nil {
		return nil, notFoundOr("performer", err)
	}
	if performer.DepartmentID != input.DepartmentID {
		return nil, apperrors.Unauthorized("performer must belong to task department")
	}

	performerID := performer.ID
	routine := &models.RoutineTask{
		DepartmentID:   input.DepartmentID,
		PerformedBy:    &performerID,
		Date:           input.Date,
		PerformedTasks: input.PerformedTasks,
		Attachments:    input.Attachments,
		MaterialsUsed:  input.MaterialsUsed,
	}
	routine.RecalculateProgress()

	if err := s.routineRepo.Create(routine); err != nil {
		return nil, fmt.Errorf("failed to create routine task: %w", err)
	}
	return routine, nil
}

// Get returns a routine task by ID.
func (s *RoutineTaskService) Get(id uint64) (*models.RoutineTask, error) {
	routine, err := s.routineRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr("routine task", err)
	}
	return routine, nil
}

// ListByDepartment lists a department's routine logs, newest first.
func (s *RoutineTaskService) ListByDepartment(departmentID uint64) ([]models.RoutineTask, error) {
	routines, err := s.routineRepo.FindByDepartment(departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routine tasks: %w", err)
	}
	return routines, nil
}

// UpdateItems replaces the performed items and recalculates progress.
func (s *RoutineTaskService) UpdateItems(id uint64, items []models.PerformedItem) (*models.RoutineTask, error) {
	if len(items) == 0 {
		return nil, apperrors.Validation("performed_tasks", "at least one performed task is required")
	}

	routine, err := s.routineRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr("routine task", err)
	}

	routine.PerformedTasks = items
	routine.RecalculateProgress()

	if err := s.routineRepo.Save(routine); err != nil {
		return nil, fmt.Errorf("failed to update routine task: %w", err)
	}
	return routine, nil
}

// Delete removes a routine task together with its notifications; attachment
// blobs are destroyed best-effort after the commit.
func (s *RoutineTaskService) Delete(ctx context.Context, id uint64) error {
	var blobs []blobRef

	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		routineRepo := s.routineRepo.WithTx(tx)
		notifRepo := s.notifRepo.WithTx(tx)

		routine, err := routineRepo.FindByID(id)
		if err != nil {
			return notFoundOr("routine task", err)
		}
		collectAttachments(&blobs, routine.Attachments)

		if err := notifRepo.DeleteByLinkedDocument(routine.ID, models.LinkedRoutineTask); err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		return routineRepo.Delete(routine.ID)
	})
	if err != nil {
		return err
	}

	cleanupBlobs(ctx, s.blobs, blobs)
	return nil
}
