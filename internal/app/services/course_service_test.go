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
)

type courseFixture struct {
	courses     *mocks.CourseRepository
	students    *mocks.StudentRepository
	enrollments *mocks.EnrollmentRepository
	svc         *courseServiceImpl
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		courses:     new(mocks.CourseRepository),
		students:    new(mocks.StudentRepository),
		enrollments: new(mocks.EnrollmentRepository),
	}
	f.svc = NewCourseService(f.courses, f.students, f.enrollments).(*courseServiceImpl)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status", func(t *testing.T) {
		f := newCourseFixture()
		f.courses.On("CourseCodeExists", ctx, "CS101").Return(false, nil)
		f.courses.On("Create", ctx, mock.MatchedBy(func(c *models.Course) bool {
			return c.Status == models.StatusActive && c.CourseName == "Intro"
		})).Return(nil)

		err := f.svc.CreateCourse(ctx, &models.Course{CourseCode: " CS101", CourseName: "Intro ", Credits: intPtr(3)})

		require.NoError(t, err)
		f.courses.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		f := newCourseFixture()
		f.courses.On("CourseCodeExists", ctx, "CS101").Return(true, nil)

		err := f.svc.CreateCourse(ctx, &models.Course{CourseCode: "CS101", CourseName: "Intro"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "courseCode", apperrors.FieldOf(err))
		f.courses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("credits out of range", func(t *testing.T) {
		f := newCourseFixture()

		err := f.svc.CreateCourse(ctx, &models.Course{CourseCode: "CS101", CourseName: "Intro", Credits: intPtr(11)})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "credits", apperrors.FieldOf(err))
	})
}

func TestUpdateCourse_CodeTaken(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	f.courses.On("GetByID", ctx, int64(1)).Return(&models.Course{ID: 1, CourseCode: "CS101", Status: models.StatusActive}, nil)
	f.courses.On("CourseCodeExists", ctx, "CS102").Return(true, nil)

	err := f.svc.UpdateCourse(ctx, &models.Course{ID: 1, CourseCode: "CS102", CourseName: "Intro"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	f.courses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCourse_NotFound(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	f.courses.On("GetByID", ctx, int64(5)).Return(nil, apperrors.ErrCourseNotFound)

	err := f.svc.UpdateCourse(ctx, &models.Course{ID: 5, CourseCode: "CS101", CourseName: "Intro"})

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAssignStudentToCourse(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, UserID: 10}
	course := &models.Course{ID: 2, CourseCode: "CS101"}

	t.Run("success then duplicate", func(t *testing.T) {
		f := newCourseFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(student, nil)
		f.courses.On("GetByID", ctx, int64(2)).Return(course, nil)
		f.enrollments.On("Exists", ctx, int64(1), int64(2)).Return(false, nil).Once()
		f.enrollments.On("Exists", ctx, int64(1), int64(2)).Return(true, nil).Once()
		f.enrollments.On("Create", ctx, mock.MatchedBy(func(e *models.Enrollment) bool {
			return e.Status == models.EnrollmentEnrolled && e.EnrollmentDate.Equal(fixedNow) && e.Grade == nil
		})).Return(nil).Once()

		enrollment, err := f.svc.AssignStudentToCourse(ctx, 1, 2)
		require.NoError(t, err)
		assert.Same(t, course, enrollment.Course)
		assert.Same(t, student, enrollment.Student)

		_, err = f.svc.AssignStudentToCourse(ctx, 1, 2)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		var ce *apperrors.CustomError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, map[string]interface{}{"studentId": int64(1), "courseId": int64(2)}, ce.Details)
		f.enrollments.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("non-positive ids", func(t *testing.T) {
		f := newCourseFixture()

		_, err := f.svc.AssignStudentToCourse(ctx, 0, 2)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		f.students.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newCourseFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrStudentNotFound)

		_, err := f.svc.AssignStudentToCourse(ctx, 1, 2)

		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
		f.courses.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("student without owning user", func(t *testing.T) {
		f := newCourseFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(&models.Student{ID: 1}, nil)

		_, err := f.svc.AssignStudentToCourse(ctx, 1, 2)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown course", func(t *testing.T) {
		f := newCourseFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(student, nil)
		f.courses.On("GetByID", ctx, int64(2)).Return(nil, apperrors.ErrCourseNotFound)

		_, err := f.svc.AssignStudentToCourse(ctx, 1, 2)

		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		f.enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRemoveStudentFromCourse(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	f.enrollments.On("Delete", ctx, int64(1), int64(2)).Return(true, nil).Once()
	f.enrollments.On("Delete", ctx, int64(1), int64(2)).Return(false, nil).Once()

	removed, err := f.svc.RemoveStudentFromCourse(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.svc.RemoveStudentFromCourse(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUpdateStudentGrade(t *testing.T) {
	ctx := context.Background()

	t.Run("not enrolled", func(t *testing.T) {
		f := newCourseFixture()
		f.enrollments.On("Get", ctx, int64(1), int64(2)).Return(nil, apperrors.ErrEnrollmentNotFound)

		updated, err := f.svc.UpdateStudentGrade(ctx, 1, 2, strPtr("A"))

		require.NoError(t, err)
		assert.False(t, updated)
		f.enrollments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("sets grade and keeps status", func(t *testing.T) {
		f := newCourseFixture()
		f.enrollments.On("Get", ctx, int64(1), int64(2)).
			Return(&models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentEnrolled}, nil)
		f.enrollments.On("Update", ctx, mock.MatchedBy(func(e *models.Enrollment) bool {
			return e.Grade != nil && *e.Grade == "B+" && e.Status == models.EnrollmentEnrolled
		})).Return(true, nil)

		updated, err := f.svc.UpdateStudentGrade(ctx, 1, 2, strPtr(" B+ "))

		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("nil clears grade", func(t *testing.T) {
		f := newCourseFixture()
		f.enrollments.On("Get", ctx, int64(1), int64(2)).
			Return(&models.Enrollment{StudentID: 1, CourseID: 2, Grade: strPtr("A")}, nil)
		f.enrollments.On("Update", ctx, mock.MatchedBy(func(e *models.Enrollment) bool {
			return e.Grade == nil
		})).Return(true, nil)

		updated, err := f.svc.UpdateStudentGrade(ctx, 1, 2, nil)

		require.NoError(t, err)
		assert.True(t, updated)
	})
}

func TestDeleteCourse(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	f.courses.On("Delete", ctx, int64(3)).Return(true, nil)

	deleted, err := f.svc.DeleteCourse(ctx, 3)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.svc.DeleteCourse(ctx, -1)
	require.NoError(t, err)
	assert.False(t, deleted)
	f.courses.AssertNumberOfCalls(t, "Delete", 1)
}

func TestGetStudentsByCourseID(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	f.enrollments.On("GetByCourseID", ctx, int64(2)).Return([]*models.Enrollment{
		{StudentID: 1, Student: &models.Student{ID: 1, FullName: "A"}},
		{StudentID: 2},
	}, nil)

	students, err := f.svc.GetStudentsByCourseID(ctx, 2)

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "A", students[0].FullName)
}
