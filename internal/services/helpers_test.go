package services

import (
	"context"
	"testing"

	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubBlobStore records blob deletions instead of calling out.
type stubBlobStore struct {
	destroyed []string
}

func (s *stubBlobStore) Destroy(_ context.Context, publicID, _ string) error {
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

type testEnv struct {
	db    *gorm.DB
	blobs *stubBlobStore

	companyRepo  repository.CompanyRepository
	deptRepo     repository.DepartmentRepository
	userRepo     repository.UserRepository
	taskRepo     repository.TaskRepository
	activityRepo repository.TaskActivityRepository
	routineRepo  repository.RoutineTaskRepository
	notifRepo    repository.NotificationRepository

	tenants   *TenantService
	deletions *DeletionService
	tasks     *TaskService
	routines  *RoutineTaskService
	auth      *AuthService
	users     *UserService
	depts     *DepartmentService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.CompanySuperAdmin{},
		&models.Department{},
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskActivity{},
		&models.RoutineTask{},
		&models.Notification{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &testEnv{
		db:           db,
		blobs:        &stubBlobStore{},
		companyRepo:  repository.NewCompanyRepository(db),
		deptRepo:     repository.NewDepartmentRepository(db),
		userRepo:     repository.NewUserRepository(db),
		taskRepo:     repository.NewTaskRepository(db),
		activityRepo: repository.NewTaskActivityRepository(db),
		routineRepo:  repository.NewRoutineTaskRepository(db),
		notifRepo:    repository.NewNotificationRepository(db),
	}

	txManager := repository.NewTxManager(db)
	env.tenants = NewTenantService(txManager, env.companyRepo, env.deptRepo, env.userRepo)
	env.deletions = NewDeletionService(txManager, env.companyRepo, env.deptRepo, env.userRepo,
		env.taskRepo, env.activityRepo, env.routineRepo, env.notifRepo, env.blobs)
	env.tasks = NewTaskService(txManager, env.taskRepo, env.activityRepo, env.userRepo, env.deptRepo)
	env.routines = NewRoutineTaskService(txManager, env.routineRepo, env.userRepo, env.notifRepo, env.blobs)
	env.auth = NewAuthService(env.userRepo)
	env.users = NewUserService(env.userRepo, env.deptRepo)
	env.depts = NewDepartmentService(env.deptRepo, env.companyRepo)

	return env
}

// seedTenant creates a full tenant graph through the regular creation path.
func seedTenant(t *testing.T, env *testEnv) *TenantBundle {
	t.Helper()

	bundle, err := env.tenants.CreateTenant(context.Background(),
		CompanyInput{
			Name:    "acme facility services",
			Address: "123 bole road, addis ababa",
			Phone:   "0911223344",
			Email:   "Ops@Acme.com",
		},
		AdminInput{
			FirstName:      "sara",
			LastName:       "bekele",
			Email:          "Sara@Acme.com",
			Password:       "supersecret",
			Position:       "operations manager",
			DepartmentName: "maintenance",
		})
	require.NoError(t, err)
	return bundle
}

// seedMember adds a regular member to the department.
func seedMember(t *testing.T, env *testEnv, departmentID uint64, email string) *models.User {
	t.Helper()

	user, err := env.users.Create(CreateUserInput{
		FirstName:    "dawit",
		LastName:     "alemu",
		Email:        email,
		Password:     "supersecret",
		Role:         models.RoleUser,
		Position:     "technician",
		DepartmentID: departmentID,
	})
	require.NoError(t, err)

	require.NoError(t, env.auth.VerifyEmail(user.Email, user.VerificationToken))
	user, err = env.userRepo.FindByID(user.ID, false)
	require.NoError(t, err)
	return user
}
