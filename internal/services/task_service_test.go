package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskKinds(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	basic, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Check fire extinguishers",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.KindBasic, basic.Kind)
	require.Equal(t, models.StatusToDo, basic.Status)
	require.Equal(t, models.PriorityMedium, basic.Priority)

	assigned, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Kind:         models.KindAssigned,
		Title:        "Service generator",
		DueDate:      time.Now().Add(48 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
		AssignedTo:   []uint64{member.ID},
		MaterialsUsed: []models.MaterialUsage{
			{MaterialName: "Engine oil", Quantity: 5, Unit: models.UnitLiter},
		},
	})
	require.NoError(t, err)
	require.Len(t, assigned.Assignments, 1)
	require.Equal(t, member.ID, assigned.Assignments[0].UserID)

	project, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Kind:         models.KindProject,
		Title:        "Renovate east wing",
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
		ClientInfo: models.ClientInfo{
			Name:    "hilton addis",
			Phone:   "0911556677",
			Address: "kazanchis district",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Hilton Addis", project.ClientInfo.Name)
	require.Equal(t, "+251911556677", project.ClientInfo.Phone)
}

func TestCreateTaskRejectsForeignAssignee(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	other, err := env.depts.Create(DepartmentInput{
		Name:      "housekeeping",
		CompanyID: bundle.Company.ID,
	})
	require.NoError(t, err)
	outsider := seedMember(t, env, other.ID, "outsider@acme.com")

	_, err = env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Kind:         models.KindAssigned,
		Title:        "Service generator",
		DueDate:      time.Now().Add(48 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
		AssignedTo:   []uint64{outsider.ID},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	// the aborted transaction left nothing behind
	var count int64
	env.db.Model(&models.Task{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestRecordActivityMovesStatus(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	activity, err := env.tasks.RecordActivity(context.Background(), task.ID, bundle.Admin.ID,
		"started work", &models.StatusChange{To: models.StatusInProgress}, nil)
	require.NoError(t, err)

	// From defaults to the task's current status
	change := activity.Change()
	require.NotNil(t, change)
	require.Equal(t, models.StatusToDo, change.From)
	require.Equal(t, models.StatusInProgress, change.To)

	reloaded, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, reloaded.Status)

	_, err = env.tasks.RecordActivity(context.Background(), task.ID, bundle.Admin.ID,
		"finished work", &models.StatusChange{To: models.StatusCompleted}, nil)
	require.NoError(t, err)

	reloaded, err = env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, reloaded.Status)

	ledger, err := env.tasks.ListActivities(task.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
}

func TestRecordActivityRejectsInvalidTransition(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	// To Do cannot jump straight to Completed
	_, err = env.tasks.RecordActivity(context.Background(), task.ID, bundle.Admin.ID,
		"done already", &models.StatusChange{To: models.StatusCompleted}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	// the rejected transition left no ledger entry and no status change
	reloaded, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusToDo, reloaded.Status)

	ledger, err := env.tasks.ListActivities(task.ID)
	require.NoError(t, err)
	require.Empty(t, ledger)
}

func TestRecordActivityNoteKeepsStatus(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	activity, err := env.tasks.RecordActivity(context.Background(), task.ID, bundle.Admin.ID,
		"ordered spare parts", nil, nil)
	require.NoError(t, err)
	require.Nil(t, activity.Change())

	reloaded, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusToDo, reloaded.Status)
}

func TestRecordActivityRejectsForeignPerformer(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	other, err := env.depts.Create(DepartmentInput{
		Name:      "housekeeping",
		CompanyID: bundle.Company.ID,
	})
	require.NoError(t, err)
	outsider := seedMember(t, env, other.ID, "outsider@acme.com")

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	_, err = env.tasks.RecordActivity(context.Background(), task.ID, outsider.ID,
		"drive-by update", &models.StatusChange{To: models.StatusInProgress}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUnassignKeepsLastAssignee(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")
	second := seedMember(t, env, bundle.Department.ID, "meron@acme.com")

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Kind:         models.KindAssigned,
		Title:        "Service generator",
		DueDate:      time.Now().Add(48 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
		AssignedTo:   []uint64{member.ID, second.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.tasks.UnassignUsers(context.Background(), task.ID, []uint64{member.ID}))

	// removing the remaining assignee is refused
	err = env.tasks.UnassignUsers(context.Background(), task.ID, []uint64{second.ID})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidation))

	reloaded, err := env.taskRepo.FindByID(task.ID, "Assignments")
	require.NoError(t, err)
	require.Len(t, reloaded.Assignments, 1)
	require.Equal(t, second.ID, reloaded.Assignments[0].UserID)
}

func TestUpdateTaskCannotTouchStatus(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	title := "Repair service elevator"
	updated, err := env.tasks.UpdateTask(task.ID, UpdateTaskInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, models.StatusToDo, updated.Status)
}

func TestUpdateTaskEnforcesFieldConstraints(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Repair elevator",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	badPriority := models.TaskPriority("Urgent")
	_, err = env.tasks.UpdateTask(task.ID, UpdateTaskInput{Priority: &badPriority})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	longDescription := strings.Repeat("x", 201)
	_, err = env.tasks.UpdateTask(task.ID, UpdateTaskInput{Description: &longDescription})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	emptyTitle := ""
	_, err = env.tasks.UpdateTask(task.ID, UpdateTaskInput{Title: &emptyTitle})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	stored, err := env.tasks.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Repair elevator", stored.Title)
	require.Equal(t, models.PriorityMedium, stored.Priority)
	require.Empty(t, stored.Description)
}
