package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/sirupsen/logrus"
)

// statusForCode maps engine error codes to HTTP statuses. The engine never
// decides a status itself; this is the only place the translation happens.
func statusForCode(code string) int {
	switch code {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeConflict, apperrors.CodeCascadeBlocked:
		return http.StatusConflict
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthorized:
		return http.StatusForbidden
	case apperrors.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case apperrors.CodeAlreadyDeleted:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the HTTP representation of a service error.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		body := gin.H{"error": appErr.Message, "code": appErr.Code}
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
		c.JSON(statusForCode(appErr.Code), body)
		return
	}

	logrus.WithError(err).Error("unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
