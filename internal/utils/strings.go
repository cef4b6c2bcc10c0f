package utils

import (
	"regexp"
	"strings"
)

// phonePattern accepts a local number (09 plus 8 digits) or its
// international form (+2519 plus 8 digits).
var phonePattern = regexp.MustCompile(`^(09\d{8}|\+2519\d{8})$`)

// IsValidPhone reports whether v matches the supported phone formats.
func IsValidPhone(v string) bool {
	return phonePattern.MatchString(v)
}

// NormalizePhone rewrites local 09-prefixed numbers to international form.
func NormalizePhone(phone string) string {
	if strings.HasPrefix(phone, "09") {
		return "+2519" + phone[2:]
	}
	return phone
}

// CapitalizeWords trims, lowercases, and title-cases each word.
func CapitalizeWords(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		if prevSpace && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 'a' + 'A')
		} else {
			b.WriteRune(r)
		}
		prevSpace = r == ' '
	}
	return b.String()
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
