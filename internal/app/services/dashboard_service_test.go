package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/mocks"
)

func newDashboard() (DashboardService, *mocks.UserRepository, *mocks.StudentRepository, *mocks.CourseRepository, *mocks.EnrollmentRepository) {
	users := new(mocks.UserRepository)
	students := new(mocks.StudentRepository)
	courses := new(mocks.CourseRepository)
	enrollments := new(mocks.EnrollmentRepository)
	return NewDashboardService(users, students, courses, enrollments), users, students, courses, enrollments
}

func TestGetStats(t *testing.T) {
	svc, users, students, courses, enrollments := newDashboard()
	ctx := context.Background()
	students.On("CountByStatus", ctx, "").Return(int64(10), nil)
	students.On("CountByStatus", ctx, models.StatusActive).Return(int64(8), nil)
	courses.On("CountByStatus", ctx, "").Return(int64(4), nil)
	courses.On("CountByStatus", ctx, models.StatusActive).Return(int64(3), nil)
	enrollments.On("Count", ctx).Return(int64(20), nil)
	users.On("Count", ctx).Return(int64(12), nil)

	stats, err := svc.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		TotalStudents: 10, ActiveStudents: 8,
		TotalCourses: 4, ActiveCourses: 3,
		TotalEnrollments: 20, TotalUsers: 12,
	}, *stats)
}

func TestGetStats_Error(t *testing.T) {
	svc, _, students, _, _ := newDashboard()
	students.On("CountByStatus", mock.Anything, "").Return(int64(0), errors.New("boom"))

	_, err := svc.GetStats(context.Background())

	assert.ErrorContains(t, err, "error counting students")
}

func TestSearch(t *testing.T) {
	svc, _, students, courses, _ := newDashboard()
	ctx := context.Background()

	result, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, result.Courses)
	assert.Empty(t, result.Students)
	courses.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	courses.On("Search", ctx, "cs", uint64(SearchResultLimit)).Return([]*models.Course{{ID: 1}}, nil)
	students.On("Search", ctx, "cs", uint64(SearchResultLimit)).Return([]*models.Student{}, nil)

	result, err = svc.Search(ctx, "cs")
	require.NoError(t, err)
	assert.Len(t, result.Courses, 1)
	assert.Empty(t, result.Students)
}
