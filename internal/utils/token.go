package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateToken returns an opaque token value for refresh, verification, and
// password reset flows.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
