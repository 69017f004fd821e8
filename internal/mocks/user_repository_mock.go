package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sims/internal/app/models"
)

type UserRepository struct{ mock.Mock }

func userOrNil(a mock.Arguments) (*models.User, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.User), a.Error(1)
}

func usersOrNil(a mock.Arguments) ([]*models.User, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]*models.User), a.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return userOrNil(m.Called(ctx, id))
}
func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return userOrNil(m.Called(ctx, username))
}
func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return userOrNil(m.Called(ctx, email))
}
func (m *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return usersOrNil(m.Called(ctx))
}
func (m *UserRepository) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return usersOrNil(m.Called(ctx, role))
}
func (m *UserRepository) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *UserRepository) UpdatePassword(ctx context.Context, userID int64, password string) error {
	return m.Called(ctx, userID, password).Error(0)
}
func (m *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	a := m.Called(ctx, id)
	return a.Bool(0), a.Error(1)
}
func (m *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	a := m.Called(ctx, username)
	return a.Bool(0), a.Error(1)
}
func (m *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	a := m.Called(ctx, email)
	return a.Bool(0), a.Error(1)
}
func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	a := m.Called(ctx)
	return a.Get(0).(int64), a.Error(1)
}
