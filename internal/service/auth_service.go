package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/repository"
	"github.com/zablonzekky/task-management-app/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Default admin account created at first startup when no admin exists.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@taskmanager.com"
	defaultAdminFullName = "System Administrator"
)

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Login authenticates a user and returns a JWT token. Unknown usernames,
// inactive accounts and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// CurrentUser resolves the authenticated user behind a verified token
func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find current user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account if no admin-role
// user exists yet. Safe to call on every startup.
func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	hasAdmin, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if hasAdmin {
		return nil
	}

	hashedPassword, err := utils.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &model.User{
		ID:           uuid.NewString(),
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		FullName:     defaultAdminFullName,
		PasswordHash: hashedPassword,
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Printf("Default admin account created: username=%s password=%s", defaultAdminUsername, defaultAdminPassword)
	return nil
}
