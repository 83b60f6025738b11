package model

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Subtask is a single generated step belonging to exactly one task.
// The subtask set is fixed at task-creation time and never regenerated.
type Subtask struct {
	// ID is the unique identifier for this subtask.
	ID string `json:"id"`

	// Title is drawn from the fixed template list at generation time.
	Title string `json:"title"`

	// Completed marks whether this step has been checked off.
	Completed bool `json:"completed"`
}

// Task is a unit of work tracked by the task store.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// UserID identifies the owning identity.
	UserID string `json:"user_id"`

	// Title is the human-readable summary. Never empty.
	Title string `json:"title"`

	// Description is the optional free-text body.
	Description string `json:"description"`

	// Subject is an optional label used for grouping.
	Subject string `json:"subject"`

	// DueDate is the calendar due date in 2006-01-02 form. Only same-day
	// comparison semantics apply; there is no time-of-day component.
	DueDate string `json:"due_date"`

	// Priority is the urgency level (use Priority* constants).
	Priority Priority `json:"priority"`

	// EstimatedHours drives subtask generation at creation time.
	EstimatedHours int `json:"estimated_hours"`

	// Completed is derived from subtask completion whenever the task has
	// at least one subtask; otherwise it is toggled directly.
	Completed bool `json:"completed"`

	// Subtasks is the ordered, creation-time-fixed set of generated steps.
	Subtasks []Subtask `json:"subtasks"`

	// CreatedAt is when the task was created. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set whenever Completed flips to true and cleared when
	// it flips back. Streak computation is derived from these days.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasSubtasks reports whether completion is a derived projection of
// subtask state rather than a directly toggled flag.
func (t Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// AllSubtasksDone reports whether the subtask list is non-empty and every
// entry is completed.
func (t Task) AllSubtasksDone() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, s := range t.Subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

// DueOn reports whether the task is due on the same calendar day as ref.
func (t Task) DueOn(ref time.Time) bool {
	return t.DueDate == ref.Format("2006-01-02")
}

// Overdue reports whether the task's due date has passed relative to ref
// and the task is still open.
func (t Task) Overdue(ref time.Time) bool {
	return !t.Completed && t.DueDate != "" && t.DueDate < ref.Format("2006-01-02")
}
