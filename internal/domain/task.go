package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskAssigneeType distinguishes tasks assigned to a single student from
// tasks assigned to a whole batch.
type TaskAssigneeType string

const (
	TaskAssigneeUser  TaskAssigneeType = "USER"
	TaskAssigneeBatch TaskAssigneeType = "BATCH"
)

type Task struct {
	ID           int32            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	AssigneeType TaskAssigneeType `json:"assignee_type"`
	AssignedTo   int32            `json:"assigned_to"` // user id or batch id per AssigneeType
	AssignedBy   int32            `json:"assigned_by"`
	Status       TaskStatus       `json:"status"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
