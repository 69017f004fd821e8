package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
)

type StudentRepository struct{ mock.Mock }

func studentOrNil(a mock.Arguments) (*models.Student, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.Student), a.Error(1)
}

func studentsOrNil(a mock.Arguments) ([]*models.Student, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]*models.Student), a.Error(1)
}

func (m *StudentRepository) CreateWithUser(ctx context.Context, u *models.User, s *models.Student) error {
	return m.Called(ctx, u, s).Error(0)
}
func (m *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return studentOrNil(m.Called(ctx, id))
}
func (m *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return studentOrNil(m.Called(ctx, userID))
}
func (m *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	return studentOrNil(m.Called(ctx, code))
}
func (m *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return studentsOrNil(m.Called(ctx))
}
func (m *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	return m.Called(ctx, s).Error(0)
}
func (m *StudentRepository) UpdateBasicInfo(ctx context.Context, id int64, info repositories.StudentBasicInfo) error {
	return m.Called(ctx, id, info).Error(0)
}
func (m *StudentRepository) DeleteWithUser(ctx context.Context, id int64) (bool, error) {
	a := m.Called(ctx, id)
	return a.Bool(0), a.Error(1)
}
func (m *StudentRepository) StudentCodeExists(ctx context.Context, code string) (bool, error) {
	a := m.Called(ctx, code)
	return a.Bool(0), a.Error(1)
}
func (m *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	a := m.Called(ctx, studentID)
	return a.Bool(0), a.Error(1)
}
func (m *StudentRepository) Search(ctx context.Context, term string, limit uint64) ([]*models.Student, error) {
	return studentsOrNil(m.Called(ctx, term, limit))
}
func (m *StudentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	a := m.Called(ctx, status)
	return a.Get(0).(int64), a.Error(1)
}
