package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/models"
)

// RequireDepartmentAccess checks if the user can act inside a department.
// The user must be a member of the department, or a super admin of the
// department's company.
func RequireDepartmentAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		departmentIDStr := c.Param("id")
		departmentID, err := strconv.ParseUint(departmentIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		var department models.Department
		if err := database.GetDB().
			Where("is_deleted = ?", false).
			First(&department, departmentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().
			Where("is_deleted = ?", false).
			First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if user.DepartmentID != department.ID {
			var link models.CompanySuperAdmin
			err := database.GetDB().
				Where("company_id = ? AND user_id = ?", department.CompanyID, userID).
				First(&link).Error
			if err != nil {
				// Return 404 instead of 403 to avoid leaking department existence
				c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
				c.Abort()
				return
			}
		}

		c.Set("department", department)
		c.Next()
	}
}

// RequireSuperAdmin checks that the current user holds the super admin role.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().
			Where("is_deleted = ?", false).
			First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if user.Role != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Super admin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
