package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant(t *testing.T) {
	env := setupTestEnv(t)

	bundle := seedTenant(t, env)

	// normalization happened before persisting
	require.Equal(t, "Acme Facility Services", bundle.Company.Name)
	require.Equal(t, "+251911223344", bundle.Company.Phone)
	require.Equal(t, "ops@acme.com", bundle.Company.Email)

	require.Equal(t, "Maintenance", bundle.Department.Name)
	require.Equal(t, "Department Of Maintenance", bundle.Department.Description)
	require.Equal(t, bundle.Company.ID, bundle.Department.CompanyID)

	require.Equal(t, "Sara", bundle.Admin.FirstName)
	require.Equal(t, models.RoleSuperAdmin, bundle.Admin.Role)
	require.Equal(t, bundle.Department.ID, bundle.Admin.DepartmentID)
	require.True(t, bundle.Admin.IsVerified)
	require.True(t, bundle.Admin.IsActive)
	require.NotEqual(t, "supersecret", bundle.Admin.PasswordHash)

	links, err := env.companyRepo.ListSuperAdmins(bundle.Company.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, bundle.Admin.ID, links[0].UserID)
}

func TestCreateTenantDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	seedTenant(t, env)

	// same identity again: rejected before anything is inserted
	_, err := env.tenants.CreateTenant(context.Background(),
		CompanyInput{
			Name:    "acme facility services",
			Address: "123 bole road, addis ababa",
			Phone:   "0911223344",
			Email:   "ops@acme.com",
		},
		AdminInput{
			FirstName:      "sara",
			LastName:       "bekele",
			Email:          "sara@acme.com",
			Password:       "supersecret",
			Position:       "operations manager",
			DepartmentName: "maintenance",
		})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrConflict))

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, "company.email", appErr.Field)

	var count int64
	env.db.Model(&models.Company{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCreateTenantInvalidInput(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.tenants.CreateTenant(context.Background(),
		CompanyInput{
			Name:    "acme",
			Address: "123 bole road, addis ababa",
			Phone:   "12345", // unsupported format
			Email:   "ops@acme.com",
		},
		AdminInput{
			FirstName:      "sara",
			LastName:       "bekele",
			Email:          "sara@acme.com",
			Password:       "supersecret",
			Position:       "operations manager",
			DepartmentName: "maintenance",
		})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidation))

	// nothing persisted
	var count int64
	env.db.Model(&models.Company{}).Count(&count)
	require.EqualValues(t, 0, count)
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)
}
