package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/services"
)

// TenantHandler exposes company subscription and the company lifecycle
// endpoints.
type TenantHandler struct {
	tenantService   *services.TenantService
	deletionService *services.DeletionService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService *services.TenantService, deletionService *services.DeletionService) *TenantHandler {
	return &TenantHandler{
		tenantService:   tenantService,
		deletionService: deletionService,
	}
}

// Subscribe creates a new tenant: the company, its first department, and the
// super admin account, atomically.
func (h *TenantHandler) Subscribe(c *gin.Context) {
	type SubscribeRequest struct {
		Company struct {
			Name    string `json:"name" binding:"required"`
			Address string `json:"address" binding:"required"`
			Phone   string `json:"phone" binding:"required"`
			Email   string `json:"email" binding:"required"`
		} `json:"company" binding:"required"`
		Admin struct {
			FirstName      string `json:"first_name" binding:"required"`
			LastName       string `json:"last_name" binding:"required"`
			Email          string `json:"email" binding:"required"`
			Password       string `json:"password" binding:"required"`
			Position       string `json:"position" binding:"required"`
			DepartmentName string `json:"department_name" binding:"required"`
		} `json:"admin" binding:"required"`
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bundle, err := h.tenantService.CreateTenant(c.Request.Context(),
		services.CompanyInput{
			Name:    req.Company.Name,
			Address: req.Company.Address,
			Phone:   req.Company.Phone,
			Email:   req.Company.Email,
		},
		services.AdminInput{
			FirstName:      req.Admin.FirstName,
			LastName:       req.Admin.LastName,
			Email:          req.Admin.Email,
			Password:       req.Admin.Password,
			Position:       req.Admin.Position,
			DepartmentName: req.Admin.DepartmentName,
		})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TenantDTO{
		Company:    dto.ToCompanyDTO(*bundle.Company),
		Department: dto.ToDepartmentDTO(*bundle.Department),
		Admin:      dto.ToUserDTO(*bundle.Admin),
	})
}

// SoftDeleteCompany marks the company and all its departments deleted.
func (h *TenantHandler) SoftDeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.SoftDelete(c.Request.Context(), services.KindCompany, id)
	if err != nil {
		respondError(c, err)
		return
	}

	company := result.(*models.Company)
	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// RestoreCompany reverses a soft delete of the company and its departments.
func (h *TenantHandler) RestoreCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.Restore(c.Request.Context(), services.KindCompany, id)
	if err != nil {
		respondError(c, err)
		return
	}

	company := result.(*models.Company)
	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// HardDeleteCompany permanently removes the company and its whole subtree.
func (h *TenantHandler) HardDeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deletionService.HardDelete(c.Request.Context(), services.KindCompany, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company deleted successfully",
	})
}

// parseIDParam reads the :id URL parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}
