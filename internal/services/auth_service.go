package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/girmesh03/taskforce/internal/constants"
	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("please verify your email first")
	ErrAccountInactive    = errors.New("account deactivated - contact administrator")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials, rotates the refresh token, and returns the
// authenticated user. Soft-deleted users are invisible here.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(utils.NormalizeEmail(input.Email), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	user.RefreshToken = utils.GenerateToken()
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return user, nil
}

// Logout clears the user's refresh token.
func (s *AuthService) Logout(userID uint64) error {
	user, err := s.userRepo.FindByID(userID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.RefreshToken = ""
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// VerifyEmail marks the account verified when the token matches and has not
// expired. Verifying an already verified account is a no-op.
func (s *AuthService) VerifyEmail(email, token string) error {
	user, err := s.userRepo.FindByEmail(utils.NormalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsVerified {
		return nil
	}
	if token == "" || user.VerificationToken != token {
		return ErrInvalidToken
	}
	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return ErrInvalidToken
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiry = nil
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a reset token valid for ResetPasswordTokenTTL
// and returns it for delivery to the user.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(utils.NormalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("user")
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	expiry := time.Now().Add(constants.ResetPasswordTokenTTL)
	user.ResetPasswordToken = utils.GenerateToken()
	user.ResetPasswordExpiry = &expiry
	if err := s.userRepo.Save(user); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return user.ResetPasswordToken, nil
}

// ResetPassword replaces the password when the token matches and has not
// expired. All tokens are cleared afterwards, so active sessions die with
// the old password.
func (s *AuthService) ResetPassword(email, token, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return apperrors.Validation("password",
			fmt.Sprintf("password must be at least %d characters long", constants.MinPasswordLength))
	}

	user, err := s.userRepo.FindByEmail(utils.NormalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if token == "" || user.ResetPasswordToken != token {
		return ErrInvalidToken
	}
	if user.ResetPasswordExpiry == nil || time.Now().After(*user.ResetPasswordExpiry) {
		return ErrInvalidToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.ClearTokens()
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// GetUser retrieves a non-deleted user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
