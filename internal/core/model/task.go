package model

import "time"

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is an entry of the external task list. The timer core only reads
// Completed.
type Task struct {
	ID        int64
	Text      string
	Completed bool
	Priority  Priority
	Category  string
	CreatedAt time.Time
	DueDate   *time.Time
}

// IsCompleted reports whether the task is done.
func (task Task) IsCompleted() bool {
	return task.Completed
}

// Overdue reports whether the task has a due date before now and is still open.
func (task Task) Overdue(now time.Time) bool {
	return !task.Completed && task.DueDate != nil && task.DueDate.Before(now)
}
