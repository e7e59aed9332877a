package model

import "time"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task represents a unit of work assigned to a user
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assigned_to"` // user ID of the assignee
	AssignedBy  string    `json:"assigned_by"` // user ID of the admin who created the task
	Status      string    `json:"status"`      // "pending", "in_progress" or "completed"
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskView is a Task with its user references resolved for API responses.
// The referenced users are looked up by ID; a deleted assigner leaves
// AssignedByUser nil.
type TaskView struct {
	Task
	AssignedToUser *User `json:"assigned_to_user,omitempty"`
	AssignedByUser *User `json:"assigned_by_user,omitempty"`
}

// CreateTaskRequest is used by admins to create a new task
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assigned_to" binding:"required"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"` // Pointers to allow partial updates
	Description *string    `json:"description,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// HasNonStatusFields reports whether the update touches anything beyond the
// status field. Non-admin actors may only change status.
func (r UpdateTaskRequest) HasNonStatusFields() bool {
	return r.Title != nil || r.Description != nil || r.AssignedTo != nil || r.Deadline != nil
}
