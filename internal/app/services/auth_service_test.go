package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/mocks"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, revocation auth.RevocationStore) (AuthService, *mocks.UserRepository, *auth.PasswordHasher) {
	t.Helper()
	users := new(mocks.UserRepository)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "sims-test"})
	return NewAuthService(users, jwtService, hasher, revocation), users, hasher
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, hasher := newAuthService(t, nil)
	hashed, err := hasher.Hash("secret")
	require.NoError(t, err)

	users.On("GetByUsername", ctx, "jdoe").Return(&models.User{ID: 3, Username: "jdoe", Password: hashed, Role: models.RoleStudent, Status: models.StatusActive}, nil)
	users.On("GetByUsername", ctx, "gone").Return(&models.User{ID: 4, Username: "gone", Password: hashed, Status: models.StatusInactive}, nil)
	users.On("GetByUsername", ctx, "nobody").Return(nil, apperrors.ErrUserNotFound)

	result, err := svc.Login(ctx, "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.User.ID)
	assert.NotEmpty(t, result.Token.Token)
	assert.NotEmpty(t, result.Token.TokenID)

	_, err = svc.Login(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "gone", "secret")
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)

	_, err = svc.Login(ctx, " ", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, users, hasher := newAuthService(t, nil)
	hashed, err := hasher.Hash("old-secret")
	require.NoError(t, err)
	users.On("GetByID", ctx, int64(3)).Return(&models.User{ID: 3, Password: hashed}, nil)

	err = svc.ChangePassword(ctx, 3, "nope", "new-secret")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "currentPassword", apperrors.FieldOf(err))

	err = svc.ChangePassword(ctx, 3, "old-secret", "123")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "newPassword", apperrors.FieldOf(err))

	users.On("UpdatePassword", ctx, int64(3), mock.MatchedBy(func(p string) bool {
		return hasher.Check(p, "new-secret")
	})).Return(nil)
	require.NoError(t, svc.ChangePassword(ctx, 3, "old-secret", "new-secret"))
	users.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	store := new(mocks.RevocationStore)
	store.On("Revoke", ctx, "tok-1", expires).Return(nil)
	svc, _, _ := newAuthService(t, store)
	require.NoError(t, svc.Logout(ctx, "tok-1", expires))
	store.AssertExpectations(t)

	noStore, _, _ := newAuthService(t, nil)
	assert.NoError(t, noStore.Logout(ctx, "tok-1", expires))
}
