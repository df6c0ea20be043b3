package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/date"
)

// Status represents a task status.
type Status string

const (
	StatusTodo Status = "TODO"
	StatusDone Status = "DONE"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDone:
		return true
	}
	return false
}

// ParseStatus parses a status name case-insensitively, so CLI input
// like "todo" or "Done" resolves to the canonical value.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", &ValidationError{
			Field: "status",
			Err:   fmt.Errorf("invalid status %q, must be one of: TODO, DONE", s),
		}
	}
	return status, nil
}

// Priority bounds. Priority 1 is the most urgent.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// Task represents a single unit of work.
type Task struct {
	ID          int        `json:"id" yaml:"id"`
	Description string     `json:"description" yaml:"description"`
	Due         *date.Date `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Priority    int        `json:"priority" yaml:"priority"`
	Status      Status     `json:"status" yaml:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// Done reports whether the task is complete.
func (t *Task) Done() bool {
	return t.Status == StatusDone
}

// Overdue reports whether the task is still pending past its due date.
func (t *Task) Overdue() bool {
	return t.Status == StatusTodo && t.Due != nil && t.Due.Before(date.Today())
}
