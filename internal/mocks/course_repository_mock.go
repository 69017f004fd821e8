package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sims/internal/app/models"
)

type CourseRepository struct{ mock.Mock }

func courseOrNil(a mock.Arguments) (*models.Course, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.Course), a.Error(1)
}

func coursesOrNil(a mock.Arguments) ([]*models.Course, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]*models.Course), a.Error(1)
}

func (m *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	return m.Called(ctx, c).Error(0)
}
func (m *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return courseOrNil(m.Called(ctx, id))
}
func (m *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return courseOrNil(m.Called(ctx, code))
}
func (m *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return coursesOrNil(m.Called(ctx))
}
func (m *CourseRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return coursesOrNil(m.Called(ctx, studentID))
}
func (m *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	return m.Called(ctx, c).Error(0)
}
func (m *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	a := m.Called(ctx, id)
	return a.Bool(0), a.Error(1)
}
func (m *CourseRepository) CourseCodeExists(ctx context.Context, code string) (bool, error) {
	a := m.Called(ctx, code)
	return a.Bool(0), a.Error(1)
}
func (m *CourseRepository) Search(ctx context.Context, term string, limit uint64) ([]*models.Course, error) {
	return coursesOrNil(m.Called(ctx, term, limit))
}
func (m *CourseRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	a := m.Called(ctx, status)
	return a.Get(0).(int64), a.Error(1)
}
