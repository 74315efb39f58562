package service

import (
	"fmt"
	"sort"

	"github.com/nibzard/todo-go/internal/todo"
)

// StatusAll is the status filter value that disables status filtering.
const StatusAll todo.Status = "all"

// Filter selects tasks by status and priority. Zero values match everything.
type Filter struct {
	Status   todo.Status
	Priority todo.Priority
}

// Validate rejects filter values that can never match.
func (f Filter) Validate() error {
	if f.Status != "" && f.Status != StatusAll && !todo.ValidateStatus(string(f.Status)) {
		return &todo.ValidationError{Field: "status", Value: string(f.Status), Err: todo.ErrInvalidStatus}
	}
	if f.Priority != "" && !todo.ValidatePriority(string(f.Priority)) {
		return &todo.ValidationError{Field: "priority", Value: string(f.Priority), Err: todo.ErrInvalidPriority}
	}
	return nil
}

// FilterTasks returns the tasks matching f, preserving order. The input
// slice is not modified.
func FilterTasks(tasks []todo.Task, f Filter) []todo.Task {
	filtered := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status != "" && f.Status != StatusAll && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// SortKey names a field tasks can be sorted by.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByTitle     SortKey = "title"
	SortByStatus    SortKey = "status"
	SortByPriority  SortKey = "priority"
	SortByDueDate   SortKey = "due_date"
	SortByCreatedAt SortKey = "created_at"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortByID, SortByTitle, SortByDueDate, SortByPriority, SortByStatus, SortByCreatedAt}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q, must be one of: id, title, due_date, priority, status, created_at", s)
}

// SortTasks sorts tasks in place, stable. Tasks without a due date sort
// first for SortByDueDate; priorities sort high, medium, low.
func SortTasks(tasks []todo.Task, key SortKey) {
	var less func(a, b todo.Task) bool
	switch key {
	case SortByTitle:
		less = func(a, b todo.Task) bool { return a.Title < b.Title }
	case SortByStatus:
		less = func(a, b todo.Task) bool { return a.Status < b.Status }
	case SortByPriority:
		less = func(a, b todo.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortByDueDate:
		less = func(a, b todo.Task) bool { return deref(a.DueDate) < deref(b.DueDate) }
	case SortByCreatedAt:
		less = func(a, b todo.Task) bool { return a.CreatedAt < b.CreatedAt }
	default:
		less = func(a, b todo.Task) bool { return a.ID < b.ID }
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j])
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
