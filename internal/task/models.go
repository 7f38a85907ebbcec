// Package task defines the task row, its insert payload and the values derived from a task list.
package task

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Category tags. Generated rows are tagged so the list shows where they came from.
const (
	CategoryGeneral     = "General"
	CategoryAITimetable = "AI Timetable"
	CategoryAIBreakdown = "AI Breakdown"
)

// Draft fields named by a ValidationError.
const (
	FieldTitle    = "title"
	FieldPriority = "priority"
)

// ParsePriority normalizes a priority string. Empty input yields the default (medium).
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", &ValidationError{Field: FieldPriority, Reason: fmt.Sprintf("unknown priority %q (valid: low, medium, high)", s)}
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Label returns the display form ("Medium").
func (p Priority) Label() string {
	return cases.Title(language.English).String(string(p))
}

// Task is a row owned by the store. The orchestrator only ever holds a copy.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Draft is the insert payload for a new row. The store assigns ID and CreatedAt.
type Draft struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
}

// NewDraft returns a draft with the defaults used by a plain add (medium, General).
func NewDraft(title string) Draft {
	return Draft{Title: title, Priority: PriorityMedium, Category: CategoryGeneral}
}

// WithDefaults fills in empty priority and category.
func (d Draft) WithDefaults() Draft {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if strings.TrimSpace(d.Category) == "" {
		d.Category = CategoryGeneral
	}
	return d
}

// Validate checks the draft can be stored.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: FieldTitle, Reason: "title cannot be empty"}
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return &ValidationError{Field: FieldPriority, Reason: fmt.Sprintf("unknown priority %q", d.Priority)}
	}
	return nil
}

// TimetableTitle formats a planner item as a task title: "[09:00-10:00] Study".
func TimetableTitle(timeRange, work string) string {
	return fmt.Sprintf("[%s] %s", strings.TrimSpace(timeRange), strings.TrimSpace(work))
}
