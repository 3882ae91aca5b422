package utils

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. The check is
// a format gate, not deliverability verification.
func ValidEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidClock reports whether s is a wall-clock time in HH:MM form.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
