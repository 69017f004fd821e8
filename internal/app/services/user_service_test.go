package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/mocks"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

func newUserService() (UserService, *mocks.UserRepository, *mocks.StudentRepository) {
	users := new(mocks.UserRepository)
	students := new(mocks.StudentRepository)
	return NewUserService(users, students), users, students
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, users, _ := newUserService()
		users.On("UsernameExists", ctx, "admin2").Return(false, nil)
		users.On("EmailExists", ctx, "a@b.io").Return(false, nil)
		users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

		err := svc.CreateUser(ctx, &models.User{Username: "admin2", Password: "x", Email: "a@b.io", Role: models.RoleAdmin})

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		svc, users, _ := newUserService()
		users.On("UsernameExists", ctx, "admin2").Return(true, nil)

		err := svc.CreateUser(ctx, &models.User{Username: "admin2", Password: "x", Role: models.RoleAdmin})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "username", apperrors.FieldOf(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, users, _ := newUserService()
		users.On("UsernameExists", ctx, "admin2").Return(false, nil)
		users.On("EmailExists", ctx, "a@b.io").Return(true, nil)

		err := svc.CreateUser(ctx, &models.User{Username: "admin2", Password: "x", Email: "a@b.io", Role: models.RoleAdmin})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "email", apperrors.FieldOf(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _, _ := newUserService()

		err := svc.CreateUser(ctx, &models.User{Username: "admin2", Password: "x", Role: "Janitor"})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "role", apperrors.FieldOf(err))
	})
}

func TestUpdateUser_EmailBelongsToOther(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Username: "a", Password: "p", Role: models.RoleAdmin, Status: models.StatusActive}, nil)
	users.On("GetByUsername", ctx, "alice").Return(nil, apperrors.ErrUserNotFound)
	users.On("GetByEmail", ctx, "x@y.io").Return(&models.User{ID: 2}, nil)

	err := svc.UpdateUser(ctx, &models.User{ID: 1, Username: "alice", Email: "x@y.io", Role: models.RoleAdmin})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "email", apperrors.FieldOf(err))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_KeepsPassword(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Username: "alice", Password: "stored", Role: models.RoleAdmin, Status: models.StatusActive}, nil)
	users.On("GetByUsername", ctx, "alice").Return(&models.User{ID: 1}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Password == "stored" && u.Status == models.StatusActive
	})).Return(nil)

	err := svc.UpdateUser(ctx, &models.User{ID: 1, Username: "alice", Role: models.RoleAdmin})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("owning a student", func(t *testing.T) {
		svc, users, students := newUserService()
		students.On("GetByUserID", ctx, int64(5)).Return(&models.Student{ID: 8, UserID: 5}, nil)
		students.On("DeleteWithUser", ctx, int64(8)).Return(true, nil)

		deleted, err := svc.DeleteUser(ctx, 5)

		require.NoError(t, err)
		assert.True(t, deleted)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("plain user", func(t *testing.T) {
		svc, users, students := newUserService()
		students.On("GetByUserID", ctx, int64(5)).Return(nil, apperrors.ErrStudentNotFound)
		users.On("Delete", ctx, int64(5)).Return(false, nil)

		deleted, err := svc.DeleteUser(ctx, 5)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
