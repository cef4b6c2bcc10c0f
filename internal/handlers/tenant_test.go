package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type tenantTestEnv struct {
	db      *gorm.DB
	handler *TenantHandler
}

func setupTenantTestEnv(t *testing.T) tenantTestEnv {
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

	txManager := repository.NewTxManager(db)
	companyRepo := repository.NewCompanyRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewTaskActivityRepository(db)
	routineRepo := repository.NewRoutineTaskRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	tenantService := services.NewTenantService(txManager, companyRepo, deptRepo, userRepo)
	deletionService := services.NewDeletionService(txManager, companyRepo, deptRepo, userRepo,
		taskRepo, activityRepo, routineRepo, notifRepo, &noopBlobStore{})
	handler := NewTenantHandler(tenantService, deletionService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return tenantTestEnv{db: db, handler: handler}
}

func subscribePayload() map[string]any {
	return map[string]any{
		"company": map[string]string{
			"name":    "acme facility services",
			"address": "123 bole road, addis ababa",
			"phone":   "0911223344",
			"email":   "ops@acme.com",
		},
		"admin": map[string]string{
			"first_name":      "sara",
			"last_name":       "bekele",
			"email":           "sara@acme.com",
			"password":        "supersecret",
			"position":        "operations manager",
			"department_name": "maintenance",
		},
	}
}

func TestTenantHandler_Subscribe(t *testing.T) {
	env := setupTenantTestEnv(t)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions("taskforce_session", store))
	r.POST("/api/companies", env.handler.Subscribe)

	body, err := json.Marshal(subscribePayload())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TenantDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Acme Facility Services", response.Company.Name)
	require.Equal(t, "Maintenance", response.Department.Name)
	require.Equal(t, models.RoleSuperAdmin, response.Admin.Role)
	require.Equal(t, response.Department.ID, response.Admin.DepartmentID)
}

func TestTenantHandler_SubscribeDuplicate(t *testing.T) {
	env := setupTenantTestEnv(t)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions("taskforce_session", store))
	r.POST("/api/companies", env.handler.Subscribe)

	body, err := json.Marshal(subscribePayload())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "CONFLICT", response["code"])
	require.Equal(t, "company.email", response["field"])

	var count int64
	env.db.Model(&models.Company{}).Count(&count)
	require.EqualValues(t, 1, count)
}

type noopBlobStore struct{}

func (*noopBlobStore) Destroy(context.Context, string, string) error { return nil }
