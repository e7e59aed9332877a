package service

import (
	"context"
	"fmt"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/repository"
)

// DashboardService computes read-only stat projections. No caching: counts
// are recomputed on every call.
type DashboardService interface {
	AdminStats(ctx context.Context) (*model.AdminDashboardStats, error)
	UserStats(ctx context.Context, userID string) (*model.UserDashboardStats, error)
}

type dashboardService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{taskRepo: taskRepo, userRepo: userRepo}
}

// AdminStats aggregates over the whole task and user stores
func (s *dashboardService) AdminStats(ctx context.Context) (*model.AdminDashboardStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users for dashboard: %w", err)
	}
	counts, err := s.taskRepo.GetStatusCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks for dashboard: %w", err)
	}
	return &model.AdminDashboardStats{
		TotalUsers:      totalUsers,
		TotalTasks:      counts.Total,
		PendingTasks:    counts.Pending,
		InProgressTasks: counts.InProgress,
		CompletedTasks:  counts.Completed,
	}, nil
}

// UserStats aggregates over tasks assigned to a single user
func (s *dashboardService) UserStats(ctx context.Context, userID string) (*model.UserDashboardStats, error) {
	counts, err := s.taskRepo.GetStatusCounts(ctx, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user tasks for dashboard: %w", err)
	}
	return &model.UserDashboardStats{
		MyTasks:         counts.Total,
		PendingTasks:    counts.Pending,
		InProgressTasks: counts.InProgress,
		CompletedTasks:  counts.Completed,
	}, nil
}
