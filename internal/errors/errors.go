package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes carried by engine errors. Handlers translate codes to HTTP
// statuses; the engine itself never decides a status code.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED_ACCESS"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeCascadeBlocked    = "CASCADE_BLOCKED"
	CodeAlreadyDeleted    = "ALREADY_DELETED"
	CodeTransactionAbort  = "TRANSACTION_ABORTED"
)

// Error is a typed engine error with a machine code and an optional field
// the error is about.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two engine errors by code so sentinel comparisons like
// errors.Is(err, ErrConflict) work regardless of message or field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrValidation        = &Error{Code: CodeValidation, Message: "invalid input"}
	ErrConflict          = &Error{Code: CodeConflict, Message: "resource conflict"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "resource not found"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "unauthorized access"}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition, Message: "invalid status transition"}
	ErrCascadeBlocked    = &Error{Code: CodeCascadeBlocked, Message: "delete blocked by active dependents"}
	ErrAlreadyDeleted    = &Error{Code: CodeAlreadyDeleted, Message: "resource already deleted"}
	ErrTransactionAbort  = &Error{Code: CodeTransactionAbort, Message: "transaction aborted"}
)

// Validation reports malformed or missing input for a specific field.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// Conflict reports a uniqueness violation on the named field.
func Conflict(field, message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Field: field}
}

// NotFound reports an absent referenced entity.
func NotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Message: entity + " not found"}
}

// Unauthorized reports a cross-department access attempt.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// InvalidTransition reports an illegal status change.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("invalid status transition from %q to %q", from, to),
	}
}

// CascadeBlocked reports a delete refused due to active dependents.
func CascadeBlocked(message string) *Error {
	return &Error{Code: CodeCascadeBlocked, Message: message}
}

// AlreadyDeleted reports a delete of an already soft-deleted entity.
func AlreadyDeleted(entity string) *Error {
	return &Error{Code: CodeAlreadyDeleted, Message: entity + " is already deleted"}
}

// TransactionAbort wraps an infrastructure failure that aborted the
// transaction; callers may retry.
func TransactionAbort(cause error) *Error {
	return &Error{Code: CodeTransactionAbort, Message: "transaction aborted", cause: cause}
}

// As unwraps err into a typed engine error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}
