package service

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the shortest password the policy accepts.
const MinPasswordLength = 8

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsStrongPassword applies the password policy: at least MinPasswordLength
// characters with a lowercase letter, an uppercase letter, a digit and a
// character that is none of those.
func IsStrongPassword(pw string) bool {
	if len([]rune(pw)) < MinPasswordLength {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}

// blank reports whether s is empty after trimming.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optional trims s and returns nil when nothing is left.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
