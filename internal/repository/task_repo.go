package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zablonzekky/task-management-app/internal/model"
)

// TaskRepository defines operations for task data
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByAssignee(ctx context.Context, userID string) ([]model.Task, error)
	GetStatusCounts(ctx context.Context, assignedTo *string) (*model.TaskStatusCounts, error)
}

type taskRepository struct {
	db DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, assigned_to, assigned_by, status, deadline, created_at, updated_at`

// Create inserts a new task into the database
func (r *taskRepository) Create(ctx context.Context, t *model.Task) error {
	sql := `INSERT INTO tasks (id, title, description, assigned_to, assigned_by, status, deadline, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, sql, t.ID, t.Title, t.Description, t.AssignedTo, t.AssignedBy,
		t.Status, t.Deadline, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update writes all mutable fields of an existing task
func (r *taskRepository) Update(ctx context.Context, t *model.Task) error {
	sql := `UPDATE tasks
            SET title = $1, description = $2, assigned_to = $3, status = $4, deadline = $5, updated_at = NOW()
            WHERE id = $6 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, t.Title, t.Description, t.AssignedTo, t.Status, t.Deadline, t.ID).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("task not found for update: %w", pgx.ErrNoRows)
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task from the database
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM tasks WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found for deletion: %w", pgx.ErrNoRows)
	}
	return nil
}

// FindByID retrieves a task by its ID
func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	t := &model.Task{}
	sql := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo,
		&t.AssignedBy, &t.Status, &t.Deadline, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return t, nil
}

// FindAll retrieves every task, newest first
func (r *taskRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	sql := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query all tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindByAssignee retrieves tasks assigned to a specific user, newest first
func (r *taskRepository) FindByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	sql := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by assignee: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy,
			&t.Status, &t.Deadline, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// GetStatusCounts aggregates task counts per status in one query. When
// assignedTo is non-nil the counts are restricted to that user's tasks.
func (r *taskRepository) GetStatusCounts(ctx context.Context, assignedTo *string) (*model.TaskStatusCounts, error) {
	sql := `SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
            FROM tasks`
	args := []any{}
	if assignedTo != nil {
		sql += ` WHERE assigned_to = $1`
		args = append(args, *assignedTo)
	}

	counts := &model.TaskStatusCounts{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(&counts.Total, &counts.Pending, &counts.InProgress, &counts.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status counts: %w", err)
	}
	return counts, nil
}
