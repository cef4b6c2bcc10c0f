package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/utils"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TenantService builds a new tenant's full initial graph: company, first
// department, and super admin user, as one atomic unit.
type TenantService struct {
	txManager   repository.TxManager
	companyRepo repository.CompanyRepository
	deptRepo    repository.DepartmentRepository
	userRepo    repository.UserRepository
	validate    *validator.Validate
}

// NewTenantService creates a new TenantService.
func NewTenantService(
	txManager repository.TxManager,
	companyRepo repository.CompanyRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
) *TenantService {
	v := validator.New()
	// validator has no rule for the local/international phone format.
	_ = v.RegisterValidation("localphone", func(fl validator.FieldLevel) bool {
		return utils.IsValidPhone(fl.Field().String())
	})

	return &TenantService{
		txManager:   txManager,
		companyRepo: companyRepo,
		deptRepo:    deptRepo,
		userRepo:    userRepo,
		validate:    v,
	}
}

// CompanyInput is the identity of the new tenant's company.
type CompanyInput struct {
	Name    string `validate:"required,min=2,max=50"`
	Address string `validate:"required,min=10,max=100"`
	Phone   string `validate:"required,localphone"`
	Email   string `validate:"required,email"`
}

// AdminInput describes the tenant's first super admin and the department
// they will run.
type AdminInput struct {
	FirstName      string `validate:"required,max=50"`
	LastName       string `validate:"required,max=50"`
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=6"`
	Position       string `validate:"required,max=100"`
	DepartmentName string `validate:"required,min=2,max=50"`
}

// TenantBundle is the fully linked result of a successful tenant creation.
type TenantBundle struct {
	Company    *models.Company
	Department *models.Department
	Admin      *models.User
}

// CreateTenant creates the company, its first department, and the super
// admin inside a single transaction. Either the whole triple becomes
// visible, or nothing is persisted.
func (s *TenantService) CreateTenant(ctx context.Context, companyInput CompanyInput, adminInput AdminInput) (*TenantBundle, error) {
	if err := s.validate.Struct(companyInput); err != nil {
		return nil, validationError(err)
	}
	if err := s.validate.Struct(adminInput); err != nil {
		return nil, validationError(err)
	}

	companyInput.Name = utils.CapitalizeWords(companyInput.Name)
	companyInput.Address = utils.CapitalizeWords(companyInput.Address)
	companyInput.Phone = utils.NormalizePhone(companyInput.Phone)
	companyInput.Email = utils.NormalizeEmail(companyInput.Email)
	adminInput.FirstName = utils.CapitalizeWords(adminInput.FirstName)
	adminInput.LastName = utils.CapitalizeWords(adminInput.LastName)
	adminInput.Position = utils.CapitalizeWords(adminInput.Position)
	adminInput.Email = utils.NormalizeEmail(adminInput.Email)
	adminInput.DepartmentName = utils.CapitalizeWords(adminInput.DepartmentName)

	// Conflicts are probed before any insert so the caller gets a
	// field-precise error instead of an aborted transaction.
	if err := s.checkConflicts(companyInput, adminInput); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminInput.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	bundle := &TenantBundle{}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		companyRepo := s.companyRepo.WithTx(tx)
		deptRepo := s.deptRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		company := &models.Company{
			Name:    companyInput.Name,
			Address: companyInput.Address,
			Phone:   companyInput.Phone,
			Email:   companyInput.Email,
		}
		if err := companyRepo.Create(company); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		department := &models.Department{
			Name:        adminInput.DepartmentName,
			Description: utils.CapitalizeWords("department of " + adminInput.DepartmentName),
			CompanyID:   company.ID,
		}
		if err := deptRepo.Create(department); err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}

		admin := &models.User{
			FirstName:    adminInput.FirstName,
			LastName:     adminInput.LastName,
			Email:        adminInput.Email,
			PasswordHash: string(hashedPassword),
			Role:         models.RoleSuperAdmin,
			Position:     adminInput.Position,
			DepartmentID: department.ID,
			IsVerified:   true,
			IsActive:     true,
		}
		if err := userRepo.Create(admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		link := &models.CompanySuperAdmin{
			CompanyID: company.ID,
			UserID:    admin.ID,
		}
		if err := companyRepo.AddSuperAdmin(link); err != nil {
			return fmt.Errorf("failed to link super admin: %w", err)
		}

		bundle.Company = company
		bundle.Department = department
		bundle.Admin = admin
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bundle, nil
}

// checkConflicts rejects identities already taken by a non-deleted company
// or user. Probe order: company email, name, phone, then admin email.
func (s *TenantService) checkConflicts(companyInput CompanyInput, adminInput AdminInput) error {
	probes := []struct {
		field string
		find  func() error
	}{
		{"company.email", func() error {
			_, err := s.companyRepo.FindByEmail(companyInput.Email, false)
			return err
		}},
		{"company.name", func() error {
			_, err := s.companyRepo.FindByName(companyInput.Name, false)
			return err
		}},
		{"company.phone", func() error {
			_, err := s.companyRepo.FindByPhone(companyInput.Phone, false)
			return err
		}},
		{"admin.email", func() error {
			_, err := s.userRepo.FindByEmail(adminInput.Email, false)
			return err
		}},
	}

	for _, probe := range probes {
		err := probe.find()
		if err == nil {
			return apperrors.Conflict(probe.field, "already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check %s: %w", probe.field, err)
		}
	}
	return nil
}

// validationError converts a validator violation into a typed engine error
// naming the first offending field.
func validationError(err error) error {
	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		v := violations[0]
		return apperrors.Validation(v.Field(), fmt.Sprintf("failed on the %q rule", v.Tag()))
	}
	return apperrors.Validation("", err.Error())
}
