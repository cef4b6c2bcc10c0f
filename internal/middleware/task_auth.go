package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/models"
)

// RequireTaskAccess checks if the user has access to a task.
// The user must be a member of the task's department.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("CreatedBy").
			Preload("Department").
			Preload("Assignments").
			Preload("Assignments.User").
			First(&task, taskID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			c.Abort()
			return
		}

		var user models.User
		err = database.GetDB().
			Where("department_id = ? AND is_deleted = ?", task.DepartmentID, false).
			First(&user, userID).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking task existence
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}
