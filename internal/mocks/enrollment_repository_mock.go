package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sims/internal/app/models"
)

type EnrollmentRepository struct{ mock.Mock }

func enrollmentsOrNil(a mock.Arguments) ([]*models.Enrollment, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]*models.Enrollment), a.Error(1)
}

func (m *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	return m.Called(ctx, e).Error(0)
}
func (m *EnrollmentRepository) Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	a := m.Called(ctx, studentID, courseID)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.Enrollment), a.Error(1)
}
func (m *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	a := m.Called(ctx, studentID, courseID)
	return a.Bool(0), a.Error(1)
}
func (m *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return enrollmentsOrNil(m.Called(ctx, studentID))
}
func (m *EnrollmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return enrollmentsOrNil(m.Called(ctx, courseID))
}
func (m *EnrollmentRepository) Update(ctx context.Context, e *models.Enrollment) (bool, error) {
	a := m.Called(ctx, e)
	return a.Bool(0), a.Error(1)
}
func (m *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) (bool, error) {
	a := m.Called(ctx, studentID, courseID)
	return a.Bool(0), a.Error(1)
}
func (m *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	a := m.Called(ctx)
	return a.Get(0).(int64), a.Error(1)
}
