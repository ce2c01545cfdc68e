package form

import (
	"strings"
	"time"
)

// Layouts of the date and time inputs.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ValidDate reports whether s is a calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// ValidTime reports whether s is a 24h HH:MM time.
func ValidTime(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
