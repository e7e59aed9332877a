package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/utils"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)

	user, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "pw1secret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role, "role defaults to user")
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pw1secret", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("pw1secret", user.PasswordHash))
}

func TestUserService_Create_Duplicate(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
		FullName: "Other Alice",
		Password: "pw2secret",
	})

	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestUserService_Update_EmptyPasswordKeepsHash(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seeded := seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)

	updated, err := svc.Update(context.Background(), seeded.ID, model.UpdateUserRequest{
		FullName: strPtr("Alice Updated"),
		Password: strPtr(""), // leave blank to keep current password
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", updated.FullName)
	assert.Equal(t, seeded.PasswordHash, updated.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("pw1secret", updated.PasswordHash))
}

func TestUserService_Update_NewPasswordRehashed(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seeded := seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)

	updated, err := svc.Update(context.Background(), seeded.ID, model.UpdateUserRequest{
		Password: strPtr("brandnewpw"),
	})

	require.NoError(t, err)
	assert.NotEqual(t, seeded.PasswordHash, updated.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("brandnewpw", updated.PasswordHash))
	assert.False(t, utils.CheckPasswordHash("pw1secret", updated.PasswordHash))
}

func TestUserService_Update_DuplicateUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)
	bob := seedUser(t, userRepo, "bob", "pw2secret", model.RoleUser, true)

	_, err := svc.Update(context.Background(), bob.ID, model.UpdateUserRequest{
		Username: strPtr("alice"),
	})

	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Update(context.Background(), "missing", model.UpdateUserRequest{
		FullName: strPtr("Nobody"),
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seeded := seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID))

	_, err := svc.GetByID(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	seedUser(t, userRepo, "alice", "pw1secret", model.RoleUser, true)
	seedUser(t, userRepo, "bob", "pw2secret", model.RoleAdmin, true)

	users, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}
