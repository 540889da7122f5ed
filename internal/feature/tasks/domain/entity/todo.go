package entity

import "time"

// MaxTodoTaskLen is the longest task description the service accepts.
const MaxTodoTaskLen = 100

// Priority is the urgency level of a to-do task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is one of the known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Todo is a dated task belonging to a single user.
type Todo struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Task      string    `json:"task"`
	Priority  Priority  `json:"priority"`
	DueDate   time.Time `json:"due_date"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
