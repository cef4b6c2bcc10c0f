package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSoftDeleteDepartmentBlockedByMembers(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	// the admin still belongs to the department
	_, err := env.deletions.SoftDelete(context.Background(), KindDepartment, bundle.Department.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrCascadeBlocked))

	department, err := env.deptRepo.FindByID(bundle.Department.ID, true)
	require.NoError(t, err)
	require.False(t, department.IsDeleted)
}

func TestSoftDeleteDepartmentAfterMembersRemoved(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	_, err := env.deletions.SoftDelete(context.Background(), KindUser, bundle.Admin.ID)
	require.NoError(t, err)

	result, err := env.deletions.SoftDelete(context.Background(), KindDepartment, bundle.Department.ID)
	require.NoError(t, err)

	department := result.(*models.Department)
	require.True(t, department.IsDeleted)
	require.NotNil(t, department.DeletedAt)

	// already-deleted departments cannot be deleted twice
	_, err = env.deletions.SoftDelete(context.Background(), KindDepartment, bundle.Department.ID)
	require.True(t, errors.Is(err, apperrors.ErrAlreadyDeleted))
}

func TestSoftDeleteCompanyCascades(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	// the company cascade marks departments deleted even with active members
	result, err := env.deletions.SoftDelete(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)

	company := result.(*models.Company)
	require.True(t, company.IsDeleted)

	department, err := env.deptRepo.FindByID(bundle.Department.ID, true)
	require.NoError(t, err)
	require.True(t, department.IsDeleted)

	_, err = env.deletions.SoftDelete(context.Background(), KindCompany, bundle.Company.ID)
	require.True(t, errors.Is(err, apperrors.ErrAlreadyDeleted))
}

func TestSoftDeleteUser(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	// give the member a session, a profile picture, and an authored task
	_, err := env.auth.Login(LoginInput{Email: "dawit@acme.com", Password: "supersecret"})
	require.NoError(t, err)

	member, err = env.userRepo.FindByID(member.ID, false)
	require.NoError(t, err)
	member.ProfilePicture = &models.Attachment{URL: "https://blobs/pic", PublicID: "pic-1", Type: models.AttachmentImage}
	require.NoError(t, env.userRepo.Save(member))

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Fix lobby lighting",
		DueDate:      time.Now().Add(48 * time.Hour),
		CreatedByID:  member.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	result, err := env.deletions.SoftDelete(context.Background(), KindUser, member.ID)
	require.NoError(t, err)

	deleted := result.(*models.User)
	require.True(t, deleted.IsDeleted)
	require.False(t, deleted.IsActive)
	require.Empty(t, deleted.RefreshToken)
	require.Nil(t, deleted.ProfilePicture)

	// authorship nullified, task kept
	survived, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Nil(t, survived.CreatedByID)

	// blob hook fired after commit
	require.Contains(t, env.blobs.destroyed, "pic-1")

	// invisible to default-visibility reads, still reachable when included
	_, err = env.userRepo.FindByID(member.ID, false)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = env.userRepo.FindByID(member.ID, true)
	require.NoError(t, err)
}

func TestRestoreUser(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	_, err := env.deletions.SoftDelete(context.Background(), KindUser, member.ID)
	require.NoError(t, err)

	result, err := env.deletions.Restore(context.Background(), KindUser, member.ID)
	require.NoError(t, err)

	restored := result.(*models.User)
	require.False(t, restored.IsDeleted)
	require.True(t, restored.IsActive)
	// tokens cleared at delete time stay cleared
	require.Empty(t, restored.RefreshToken)
}

func TestRestoreUserBlockedByDeletedDepartment(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	_, err := env.deletions.SoftDelete(context.Background(), KindUser, member.ID)
	require.NoError(t, err)
	_, err = env.deletions.SoftDelete(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)

	_, err = env.deletions.Restore(context.Background(), KindUser, member.ID)
	require.True(t, errors.Is(err, apperrors.ErrCascadeBlocked))
}

func TestRestoreCompanyCascades(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	_, err := env.deletions.SoftDelete(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)

	result, err := env.deletions.Restore(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)

	company := result.(*models.Company)
	require.False(t, company.IsDeleted)
	require.Nil(t, company.DeletedAt)

	department, err := env.deptRepo.FindByID(bundle.Department.ID, false)
	require.NoError(t, err)
	require.False(t, department.IsDeleted)
}

func TestRestoreCompanySkipsIndependentlyDeletedDepartment(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	housekeeping, err := env.depts.Create(DepartmentInput{
		Name:      "housekeeping",
		CompanyID: bundle.Company.ID,
	})
	require.NoError(t, err)

	// deleted on its own, before the company cascade
	_, err = env.deletions.SoftDelete(context.Background(), KindDepartment, housekeeping.ID)
	require.NoError(t, err)

	_, err = env.deletions.SoftDelete(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)
	_, err = env.deletions.Restore(context.Background(), KindCompany, bundle.Company.ID)
	require.NoError(t, err)

	cascaded, err := env.deptRepo.FindByID(bundle.Department.ID, false)
	require.NoError(t, err)
	require.False(t, cascaded.IsDeleted)

	independent, err := env.deptRepo.FindByID(housekeeping.ID, true)
	require.NoError(t, err)
	require.True(t, independent.IsDeleted)
	require.NotNil(t, independent.DeletedAt)
}

func TestHardDeleteTask(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	task, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Replace chiller filters",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  bundle.Admin.ID,
		DepartmentID: bundle.Department.ID,
		Attachments: []models.Attachment{
			{URL: "https://blobs/report", PublicID: "report-1", Type: models.AttachmentPDF},
		},
	})
	require.NoError(t, err)

	_, err = env.tasks.RecordActivity(context.Background(), task.ID, bundle.Admin.ID,
		"started the replacement", &models.StatusChange{To: models.StatusInProgress}, nil)
	require.NoError(t, err)

	require.NoError(t, env.notifRepo.Create(&models.Notification{
		UserID:             bundle.Admin.ID,
		Message:            "Task updated",
		LinkedDocumentID:   task.ID,
		LinkedDocumentType: models.LinkedTask,
	}))

	require.NoError(t, env.deletions.HardDelete(context.Background(), KindTask, task.ID))

	_, err = env.taskRepo.FindByID(task.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	activities, err := env.activityRepo.FindByTask(task.ID)
	require.NoError(t, err)
	require.Empty(t, activities)

	var notifCount int64
	env.db.Model(&models.Notification{}).Count(&notifCount)
	require.EqualValues(t, 0, notifCount)

	require.Contains(t, env.blobs.destroyed, "report-1")
}

func TestHardDeleteCompanyRemovesSubtree(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	_, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Inspect rooftop units",
		DueDate:      time.Now().Add(24 * time.Hour),
		CreatedByID:  member.ID,
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	_, err = env.routines.Create(context.Background(), RoutineTaskInput{
		DepartmentID: bundle.Department.ID,
		PerformedBy:  member.ID,
		PerformedTasks: []models.PerformedItem{
			{Description: "morning walkthrough", IsCompleted: true},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.deletions.HardDelete(context.Background(), KindCompany, bundle.Company.ID))

	for table, model := range map[string]interface{}{
		"companies":     &models.Company{},
		"departments":   &models.Department{},
		"users":         &models.User{},
		"tasks":         &models.Task{},
		"activities":    &models.TaskActivity{},
		"routine_tasks": &models.RoutineTask{},
		"notifications": &models.Notification{},
		"super_admins":  &models.CompanySuperAdmin{},
	} {
		var count int64
		env.db.Model(model).Count(&count)
		require.Zero(t, count, "expected %s to be empty", table)
	}
}
