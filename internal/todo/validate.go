package todo

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// ValidateTitle reports whether s is non-empty after trimming whitespace.
func ValidateTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateTitleLength reports whether s has at most max characters.
func ValidateTitleLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// ValidateDescriptionLength reports whether s is absent or has at most max
// characters.
func ValidateDescriptionLength(s *string, max int) bool {
	if s == nil {
		return true
	}
	return utf8.RuneCountInString(*s) <= max
}

// ValidatePriority reports whether s is exactly low, medium or high.
func ValidatePriority(s string) bool {
	for _, p := range Priorities {
		if string(p) == s {
			return true
		}
	}
	return false
}

// ValidateStatus reports whether s is exactly pending or completed.
func ValidateStatus(s string) bool {
	for _, st := range Statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// ValidateDate reports whether s is a calendar-correct YYYY-MM-DD date.
// time.Parse rejects out-of-range months and days, including Feb 30.
func ValidateDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func checkTitle(title string) error {
	if !ValidateTitle(title) {
		return &ValidationError{Field: "title", Err: ErrTitleEmpty}
	}
	if !ValidateTitleLength(title, MaxTitleLength) {
		return &ValidationError{Field: "title", Err: ErrTitleTooLong}
	}
	return nil
}

func checkDescription(desc *string) error {
	if !ValidateDescriptionLength(desc, MaxDescriptionLength) {
		return &ValidationError{Field: "description", Err: ErrDescriptionTooLong}
	}
	return nil
}

func checkPriority(p Priority) error {
	if !ValidatePriority(string(p)) {
		return &ValidationError{Field: "priority", Err: ErrInvalidPriority, Value: string(p)}
	}
	return nil
}

func checkStatus(s Status) error {
	if !ValidateStatus(string(s)) {
		return &ValidationError{Field: "status", Err: ErrInvalidStatus, Value: string(s)}
	}
	return nil
}

// checkDueDate accepts nil and the empty string, both meaning "no due date".
func checkDueDate(due *string) error {
	if due == nil || *due == "" {
		return nil
	}
	if !ValidateDate(*due) {
		return &ValidationError{Field: "due_date", Err: ErrInvalidDate, Value: *due}
	}
	return nil
}
