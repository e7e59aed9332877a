package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/repository"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", repository.ErrDuplicate)
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user not found for update: %w", pgx.ErrNoRows)
	}
	for _, u := range f.users {
		if u.ID != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return fmt.Errorf("user with given username or email already exists: %w", repository.ErrDuplicate)
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user not found for deletion: %w", pgx.ErrNoRows)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) HasAdmin(_ context.Context) (bool, error) {
	for _, u := range f.users {
		if u.Role == model.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeTaskRepo struct {
	tasks map[string]*model.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*model.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return fmt.Errorf("task not found for update: %w", pgx.ErrNoRows)
	}
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return fmt.Errorf("task not found for deletion: %w", pgx.ErrNoRows)
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) FindAll(_ context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (f *fakeTaskRepo) FindByAssignee(_ context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	for _, t := range f.tasks {
		if t.AssignedTo == userID {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (f *fakeTaskRepo) GetStatusCounts(_ context.Context, assignedTo *string) (*model.TaskStatusCounts, error) {
	counts := &model.TaskStatusCounts{}
	for _, t := range f.tasks {
		if assignedTo != nil && t.AssignedTo != *assignedTo {
			continue
		}
		counts.Total++
		switch t.Status {
		case model.TaskStatusPending:
			counts.Pending++
		case model.TaskStatusInProgress:
			counts.InProgress++
		case model.TaskStatusCompleted:
			counts.Completed++
		}
	}
	return counts, nil
}

// Interface conformance checks
var (
	_ repository.UserRepository = (*fakeUserRepo)(nil)
	_ repository.TaskRepository = (*fakeTaskRepo)(nil)
)
