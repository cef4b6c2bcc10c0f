package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/services"
)

// DepartmentHandler coordinates department HTTP handlers.
type DepartmentHandler struct {
	deptService     *services.DepartmentService
	deletionService *services.DeletionService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(deptService *services.DepartmentService, deletionService *services.DeletionService) *DepartmentHandler {
	return &DepartmentHandler{
		deptService:     deptService,
		deletionService: deletionService,
	}
}

// CreateDepartment adds a department to a company.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	type CreateDepartmentRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		CompanyID   uint64 `json:"company_id" binding:"required"`
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	department, err := h.deptService.Create(services.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*department))
}

// GetDepartment returns a department by ID.
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	department, err := h.deptService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// ListDepartments returns a company's departments.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company_id"})
		return
	}

	departments, err := h.deptService.ListByCompany(companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": dto.ToDepartmentDTOs(departments),
	})
}

// UpdateDepartment renames a department or changes its description.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateDepartmentRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	department, err := h.deptService.Update(id, services.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// SoftDeleteDepartment marks a department deleted. Blocked while the
// department still has active members.
func (h *DepartmentHandler) SoftDeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.SoftDelete(c.Request.Context(), services.KindDepartment, id)
	if err != nil {
		respondError(c, err)
		return
	}

	department := result.(*models.Department)
	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// RestoreDepartment reverses a soft delete while the parent company is alive.
func (h *DepartmentHandler) RestoreDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.Restore(c.Request.Context(), services.KindDepartment, id)
	if err != nil {
		respondError(c, err)
		return
	}

	department := result.(*models.Department)
	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// HardDeleteDepartment permanently removes a department and its subtree.
func (h *DepartmentHandler) HardDeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deletionService.HardDelete(c.Request.Context(), services.KindDepartment, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department deleted successfully",
	})
}
