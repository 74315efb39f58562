// Package todo defines task records, their field rules, and tagged errors.
package todo

import "time"

// TimestampLayout is the created_at format: ISO 8601 without a zone.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the due_date format.
const DateLayout = "2006-01-02"

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Statuses lists the valid statuses in display order.
var Statuses = []Status{StatusPending, StatusCompleted}

// Priority represents a task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities: high is 0, medium 1, low 2. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Task is a single to-do item. Optional fields are nil when absent and are
// serialized as null.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"due_date"`
	CreatedAt   string   `json:"created_at"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Clone returns a deep copy of the task, so optional fields can be modified
// without aliasing the original.
func (t Task) Clone() Task {
	c := t
	c.Description = cloneString(t.Description)
	c.DueDate = cloneString(t.DueDate)
	return c
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewTask carries the user-supplied fields for a task that does not exist yet.
type NewTask struct {
	Title       string
	Description *string
	// Priority defaults to medium when empty.
	Priority Priority
	DueDate  *string
}

// Validate checks every field of the new task and returns the first failure.
func (n NewTask) Validate() error {
	if err := checkTitle(n.Title); err != nil {
		return err
	}
	if err := checkDescription(n.Description); err != nil {
		return err
	}
	if err := checkPriority(n.priority()); err != nil {
		return err
	}
	if err := checkDueDate(n.DueDate); err != nil {
		return err
	}
	return nil
}

func (n NewTask) priority() Priority {
	if n.Priority == "" {
		return PriorityMedium
	}
	return n.Priority
}

// Build returns the pending task record for n with the given id and creation
// time. It does not validate; call Validate first.
func (n NewTask) Build(id int, now time.Time) Task {
	return Task{
		ID:          id,
		Title:       n.Title,
		Description: emptyToNil(n.Description),
		Status:      StatusPending,
		Priority:    n.priority(),
		DueDate:     emptyToNil(n.DueDate),
		CreatedAt:   FormatTimestamp(now),
	}
}

// Changes holds the fields an update provides. A nil field is omitted and
// keeps its previous value. An empty Description or DueDate clears the field.
type Changes struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	DueDate     *string
}

// IsEmpty reports whether no field is provided.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Priority == nil &&
		c.Status == nil && c.DueDate == nil
}

// Fields returns the names of the provided fields in record order.
func (c Changes) Fields() []string {
	var fields []string
	if c.Title != nil {
		fields = append(fields, "title")
	}
	if c.Description != nil {
		fields = append(fields, "description")
	}
	if c.Status != nil {
		fields = append(fields, "status")
	}
	if c.Priority != nil {
		fields = append(fields, "priority")
	}
	if c.DueDate != nil {
		fields = append(fields, "due_date")
	}
	return fields
}

// Validate checks every provided field. It returns ErrNoUpdateFields when
// nothing is provided, otherwise the first field failure.
func (c Changes) Validate() error {
	if c.IsEmpty() {
		return &ValidationError{Err: ErrNoUpdateFields}
	}
	if c.Title != nil {
		if err := checkTitle(*c.Title); err != nil {
			return err
		}
	}
	if err := checkDescription(c.Description); err != nil {
		return err
	}
	if c.Priority != nil {
		if err := checkPriority(*c.Priority); err != nil {
			return err
		}
	}
	if c.Status != nil {
		if err := checkStatus(*c.Status); err != nil {
			return err
		}
	}
	if err := checkDueDate(c.DueDate); err != nil {
		return err
	}
	return nil
}

// Apply returns a copy of t with the provided fields replaced. The input task
// is never modified.
func (c Changes) Apply(t Task) Task {
	out := t.Clone()
	if c.Title != nil {
		out.Title = *c.Title
	}
	if c.Description != nil {
		out.Description = emptyToNil(c.Description)
	}
	if c.Priority != nil {
		out.Priority = *c.Priority
	}
	if c.Status != nil {
		out.Status = *c.Status
	}
	if c.DueDate != nil {
		out.DueDate = emptyToNil(c.DueDate)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return cloneString(s)
}
