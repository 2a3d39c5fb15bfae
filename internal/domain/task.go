package domain

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities lists the accepted priority values in sort-rank order
// (most urgent first).
var ValidPriorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// IsValid checks if the priority is one of the enumerated values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status represents a task lifecycle status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses lists the accepted status values.
var ValidStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// IsValid checks if the status is one of the enumerated values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a to-do item in the domain model.
// DueDate and Category use pointers to distinguish "absent" from empty.
type Task struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	Category    *string `json:"category"`
	Overdue     bool    `json:"overdue"`
}

// IsCompleted reports whether the task has been marked completed.
func (t Task) IsCompleted() bool {
	return t.Status == string(StatusCompleted)
}
