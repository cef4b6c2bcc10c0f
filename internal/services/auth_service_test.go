package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	user, err := env.auth.Login(LoginInput{Email: "Sara@Acme.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, bundle.Admin.ID, user.ID)
	require.NotEmpty(t, user.RefreshToken)

	// each login rotates the refresh token
	again, err := env.auth.Login(LoginInput{Email: "sara@acme.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEqual(t, user.RefreshToken, again.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	seedTenant(t, env)

	_, err := env.auth.Login(LoginInput{Email: "sara@acme.com", Password: "wrong"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = env.auth.Login(LoginInput{Email: "nobody@acme.com", Password: "supersecret"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginRejectsSoftDeletedUser(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)
	member := seedMember(t, env, bundle.Department.ID, "dawit@acme.com")

	_, err := env.deletions.SoftDelete(context.Background(), KindUser, member.ID)
	require.NoError(t, err)

	// soft-deleted users are invisible to authentication
	_, err = env.auth.Login(LoginInput{Email: "dawit@acme.com", Password: "supersecret"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogoutClearsRefreshToken(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	user, err := env.auth.Login(LoginInput{Email: "sara@acme.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, user.RefreshToken)

	require.NoError(t, env.auth.Logout(bundle.Admin.ID))

	stored, err := env.userRepo.FindByID(bundle.Admin.ID, false)
	require.NoError(t, err)
	require.Empty(t, stored.RefreshToken)
}

func TestVerifyEmailGatesLogin(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	user, err := env.users.Create(CreateUserInput{
		FirstName:    "dawit",
		LastName:     "alemu",
		Email:        "dawit@acme.com",
		Password:     "supersecret",
		Role:         models.RoleUser,
		Position:     "technician",
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)
	require.False(t, user.IsVerified)
	require.NotEmpty(t, user.VerificationToken)

	_, err = env.auth.Login(LoginInput{Email: "dawit@acme.com", Password: "supersecret"})
	require.True(t, errors.Is(err, ErrAccountNotVerified))

	require.True(t, errors.Is(env.auth.VerifyEmail("dawit@acme.com", "bogus"), ErrInvalidToken))

	require.NoError(t, env.auth.VerifyEmail("dawit@acme.com", user.VerificationToken))

	logged, err := env.auth.Login(LoginInput{Email: "dawit@acme.com", Password: "supersecret"})
	require.NoError(t, err)
	require.True(t, logged.IsVerified)
	require.Empty(t, logged.VerificationToken)
}

func TestVerifyEmailRejectsExpiredToken(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	user, err := env.users.Create(CreateUserInput{
		FirstName:    "dawit",
		LastName:     "alemu",
		Email:        "dawit@acme.com",
		Password:     "supersecret",
		Role:         models.RoleUser,
		Position:     "technician",
		DepartmentID: bundle.Department.ID,
	})
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	user.VerificationTokenExpiry = &expired
	require.NoError(t, env.userRepo.Save(user))

	err = env.auth.VerifyEmail("dawit@acme.com", user.VerificationToken)
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestPasswordResetFlow(t *testing.T) {
	env := setupTestEnv(t)
	seedTenant(t, env)

	token, err := env.auth.RequestPasswordReset("Sara@Acme.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = env.auth.ResetPassword("sara@acme.com", "bogus", "newsecret")
	require.True(t, errors.Is(err, ErrInvalidToken))

	err = env.auth.ResetPassword("sara@acme.com", token, "shrt")
	require.True(t, errors.Is(err, apperrors.ErrValidation))

	require.NoError(t, env.auth.ResetPassword("sara@acme.com", token, "newsecret"))

	_, err = env.auth.Login(LoginInput{Email: "sara@acme.com", Password: "supersecret"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = env.auth.Login(LoginInput{Email: "sara@acme.com", Password: "newsecret"})
	require.NoError(t, err)

	// tokens are single use
	err = env.auth.ResetPassword("sara@acme.com", token, "another1")
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestPasswordResetRejectsExpiredToken(t *testing.T) {
	env := setupTestEnv(t)
	bundle := seedTenant(t, env)

	token, err := env.auth.RequestPasswordReset("sara@acme.com")
	require.NoError(t, err)

	admin, err := env.userRepo.FindByID(bundle.Admin.ID, false)
	require.NoError(t, err)
	expired := time.Now().Add(-time.Minute)
	admin.ResetPasswordExpiry = &expired
	require.NoError(t, env.userRepo.Save(admin))

	err = env.auth.ResetPassword("sara@acme.com", token, "newsecret")
	require.True(t, errors.Is(err, ErrInvalidToken))
}
