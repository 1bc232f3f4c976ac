package model

import (
	"strings"
	"time"
)

// Status is the completion state of a todo.
type Status string

// Todo status constants.
const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusDone {
		return StatusPending
	}
	return StatusDone
}

// Priority is the importance of a todo.
type Priority string

// Priority levels.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a unit of work scheduled for a calendar day.
type Todo struct {
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Status      Status   `json:"status" db:"status"`
	Priority    Priority `json:"priority" db:"priority"`
	// Date is the day the todo is scheduled for, formatted YYYY-MM-DD.
	Date string `json:"date" db:"date"`
}

// Done reports whether the todo is completed.
func (t Todo) Done() bool {
	return t.Status == StatusDone
}

// Input returns the mutable fields of the todo.
func (t Todo) Input() TodoInput {
	return TodoInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Date:        t.Date,
	}
}

// TodoInput carries the caller-supplied fields for creating or replacing a todo.
type TodoInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Date        string
}

// Normalize trims the title and fills in the default status and priority.
func (in TodoInput) Normalize() TodoInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return in
}

// Validate checks the input after normalization.
func (in TodoInput) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "must not be empty"})
	}
	if !in.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be pending or done"})
	}
	if !in.Priority.Valid() {
		errs = append(errs, FieldError{Field: "priority", Message: "must be low, medium or high"})
	}
	if _, err := ParseDate(in.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Todo builds the stored representation for the given id.
func (in TodoInput) Todo(id int64) Todo {
	return Todo{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Date:        in.Date,
	}
}

// DateLayout is the storage format of todo dates.
const DateLayout = "2006-01-02"

// FormatDate renders t as a YYYY-MM-DD string in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}
