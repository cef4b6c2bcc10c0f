package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 6

	VerificationTokenTTL  = 15 * time.Minute
	ResetPasswordTokenTTL = time.Hour
)
