package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/dto"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/services"
)

// UserHandler coordinates user HTTP handlers.
type UserHandler struct {
	userService     *services.UserService
	deletionService *services.DeletionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, deletionService *services.DeletionService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		deletionService: deletionService,
	}
}

// CreateUser provisions a user in a department.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		FirstName    string `json:"first_name" binding:"required"`
		LastName     string `json:"last_name" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		Role         string `json:"role" binding:"required"`
		Position     string `json:"position" binding:"required"`
		DepartmentID uint64 `json:"department_id" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         models.UserRole(req.Role),
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns a department's users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	departmentID, err := strconv.ParseUint(c.Query("department_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id"})
		return
	}

	users, err := h.userService.ListByDepartment(departmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// SoftDeleteUser deactivates a user: tasks survive with authorship nullified,
// session tokens are wiped, notifications are removed.
func (h *UserHandler) SoftDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.SoftDelete(c.Request.Context(), services.KindUser, id)
	if err != nil {
		respondError(c, err)
		return
	}

	user := result.(*models.User)
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// RestoreUser reverses a soft delete while the user's department is alive.
// Cleared tokens are not restored; the user must log in again.
func (h *UserHandler) RestoreUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deletionService.Restore(c.Request.Context(), services.KindUser, id)
	if err != nil {
		respondError(c, err)
		return
	}

	user := result.(*models.User)
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// HardDeleteUser permanently removes a user and their authored records.
func (h *UserHandler) HardDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deletionService.HardDelete(c.Request.Context(), services.KindUser, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
