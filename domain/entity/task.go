package entity

import (
	"time"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityNormal   TaskPriority = "normal"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// ValidPriority reports whether p is one of the known task priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task represents a single to-do item owned by a user
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`
	Priority    TaskPriority `json:"priority"`
	Tags        []string     `json:"tags"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new pending task
func NewTask(id, userID, description string, priority TaskPriority, tags []string, dueDate *time.Time) *Task {
	if priority == "" {
		priority = TaskPriorityNormal
	}
	now := time.Now()
	return &Task{
		ID:          id,
		UserID:      userID,
		Description: description,
		Completed:   false,
		Priority:    priority,
		Tags:        tags,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskFilter holds optional list filters
type TaskFilter struct {
	Status *bool // nil = all, true = completed, false = pending
	Search string
	Limit  int
	Offset int
}

// TaskStats aggregates a user's productivity numbers
type TaskStats struct {
	Total          int                  `json:"total"`
	Completed      int                  `json:"completed"`
	Pending        int                  `json:"pending"`
	Overdue        int                  `json:"overdue"`
	CompletionRate int                  `json:"completion_rate"`
	ByPriority     map[TaskPriority]int `json:"by_priority"`
}
