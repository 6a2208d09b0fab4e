package lead

import (
	"strings"
	"unicode/utf8"
)

// Per-field length caps. Overlong values are truncated, never rejected;
// phone is the only field with a hard validation rule.
const (
	maxNameLen    = 120
	maxPhoneLen   = 40
	maxCarLen     = 120
	maxMessageLen = 2000
	maxPageLen    = 500
	maxUALen      = 400
	maxStatusLen  = 30
	maxNoteLen    = 4000

	minPhoneLen = 6
)

// sanitize trims surrounding whitespace and caps the value at max runes.
func sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s
}

// optional converts a sanitized value to its nullable form: empty strings
// are stored as NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// validatePhone enforces the single hard rejection rule: a phone must be
// present and at least 6 characters long after trimming.
func validatePhone(phone string) error {
	if utf8.RuneCountInString(phone) < minPhoneLen {
		return ErrInvalidPhone
	}
	return nil
}
