package model

// TaskStatusCounts holds per-status task counts from a single aggregate query
type TaskStatusCounts struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
}

// AdminDashboardStats is the system-wide dashboard projection
type AdminDashboardStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalTasks      int64 `json:"total_tasks"`
	PendingTasks    int64 `json:"pending_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
}

// UserDashboardStats is restricted to tasks assigned to a single user
type UserDashboardStats struct {
	MyTasks         int64 `json:"my_tasks"`
	PendingTasks    int64 `json:"pending_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
}
