package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUnknownAssignee = errors.New("assigned user not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
)

// TaskService defines operations for tasks. Creation and deletion are
// admin-only (enforced by route middleware); updates and listing apply the
// per-task policy here: non-admin actors see and touch only their own tasks,
// and may change nothing but the status field.
type TaskService interface {
	Create(ctx context.Context, actorID string, req model.CreateTaskRequest) (*model.TaskView, error)
	Update(ctx context.Context, taskID, actorID, actorRole string, req model.UpdateTaskRequest) (*model.TaskView, error)
	Delete(ctx context.Context, taskID string) error
	ListFor(ctx context.Context, actorID, actorRole string) ([]model.TaskView, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) TaskService {
	return &taskService{taskRepo: taskRepo, userRepo: userRepo}
}

// Create stores a new task assigned by actorID. The assignee must resolve to
// an existing user; otherwise nothing is persisted.
func (s *taskService) Create(ctx context.Context, actorID string, req model.CreateTaskRequest) (*model.TaskView, error) {
	assignee, err := s.userRepo.FindByID(ctx, req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	if assignee == nil {
		return nil, ErrUnknownAssignee
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actorID,
		Status:      model.TaskStatusPending,
		Deadline:    req.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task in repository: %w", err)
	}
	return s.toView(ctx, task, map[string]*model.User{assignee.ID: assignee})
}

// Update applies a partial update under the role policy
func (s *taskService) Update(ctx context.Context, taskID, actorID, actorRole string, req model.UpdateTaskRequest) (*model.TaskView, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task for update: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if actorRole != model.RoleAdmin {
		if task.AssignedTo != actorID {
			return nil, ErrForbidden
		}
		if req.HasNonStatusFields() {
			return nil, ErrForbidden
		}
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedTo != nil && *req.AssignedTo != task.AssignedTo {
		assignee, err := s.userRepo.FindByID(ctx, *req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve new assignee: %w", err)
		}
		if assignee == nil {
			return nil, ErrUnknownAssignee
		}
		task.AssignedTo = *req.AssignedTo
	}
	if req.Status != nil {
		// Flat enum: any transition is legal, including completed -> pending.
		task.Status = *req.Status
	}
	if req.Deadline != nil {
		task.Deadline = *req.Deadline
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task in repository: %w", err)
	}
	return s.toView(ctx, task, map[string]*model.User{})
}

// Delete removes a task
func (s *taskService) Delete(ctx context.Context, taskID string) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task in repository: %w", err)
	}
	return nil
}

// ListFor returns all tasks for admins, or the actor's own tasks otherwise
func (s *taskService) ListFor(ctx context.Context, actorID, actorRole string) ([]model.TaskView, error) {
	var tasks []model.Task
	var err error
	if actorRole == model.RoleAdmin {
		tasks, err = s.taskRepo.FindAll(ctx)
	} else {
		tasks, err = s.taskRepo.FindByAssignee(ctx, actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks from repository: %w", err)
	}

	views := make([]model.TaskView, 0, len(tasks))
	cache := map[string]*model.User{}
	for i := range tasks {
		view, err := s.toView(ctx, &tasks[i], cache)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// toView resolves the assignee and assigner references of a task. The cache
// spans one call so a user listed on many tasks is fetched once. A missing
// user (e.g. a deleted assigner) yields a nil snapshot, not an error.
func (s *taskService) toView(ctx context.Context, task *model.Task, cache map[string]*model.User) (*model.TaskView, error) {
	resolve := func(id string) (*model.User, error) {
		if u, ok := cache[id]; ok {
			return u, nil
		}
		u, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve task user reference: %w", err)
		}
		cache[id] = u
		return u, nil
	}

	assignedTo, err := resolve(task.AssignedTo)
	if err != nil {
		return nil, err
	}
	assignedBy, err := resolve(task.AssignedBy)
	if err != nil {
		return nil, err
	}

	return &model.TaskView{
		Task:           *task,
		AssignedToUser: assignedTo,
		AssignedByUser: assignedBy,
	}, nil
}
