package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/mocks"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

type studentFixture struct {
	students    *mocks.StudentRepository
	users       *mocks.UserRepository
	courses     *mocks.CourseRepository
	enrollments *mocks.EnrollmentRepository
	svc         *studentServiceImpl
}

var fixedNow = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

func newStudentFixture() *studentFixture {
	f := &studentFixture{
		students:    new(mocks.StudentRepository),
		users:       new(mocks.UserRepository),
		courses:     new(mocks.CourseRepository),
		enrollments: new(mocks.EnrollmentRepository),
	}
	f.svc = NewStudentService(f.students, f.users, f.courses, f.enrollments).(*studentServiceImpl)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateStudent_Success(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()

	f.students.On("StudentCodeExists", ctx, "ST001").Return(false, nil)
	f.users.On("UsernameExists", ctx, "jdoe").Return(false, nil)
	f.users.On("EmailExists", ctx, "jdoe@school.edu").Return(false, nil)
	f.students.On("CreateWithUser", ctx, mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Student")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 7
			s := args.Get(2).(*models.Student)
			s.ID = 3
			s.UserID = 7
		}).
		Return(nil)

	student := &models.Student{StudentCode: " ST001 ", FullName: "Jane Doe", Email: strPtr(" jdoe@school.edu ")}
	created, err := f.svc.CreateStudent(ctx, student, "jdoe", "secret")

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "ST001", created.StudentCode)
	assert.Equal(t, models.StatusActive, created.Status)
	require.NotNil(t, created.EnrollmentDate)
	assert.Equal(t, fixedNow, *created.EnrollmentDate)

	require.NotNil(t, created.User)
	assert.Equal(t, models.RoleStudent, created.User.Role)
	assert.Equal(t, models.StatusActive, created.User.Status)
	assert.Equal(t, "jdoe@school.edu", created.User.Email)
	assert.Equal(t, "secret", created.User.Password)
	f.students.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestCreateStudent_UsernameTaken(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()

	f.students.On("StudentCodeExists", ctx, "ST001").Return(false, nil)
	f.users.On("UsernameExists", ctx, "jdoe").Return(true, nil)

	_, err := f.svc.CreateStudent(ctx, &models.Student{StudentCode: "ST001", FullName: "Jane"}, "jdoe", "secret")

	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "username", apperrors.FieldOf(err))
	f.students.AssertNotCalled(t, "CreateWithUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateStudent_Validation(t *testing.T) {
	tests := []struct {
		name     string
		student  *models.Student
		username string
		password string
		setup    func(f *studentFixture)
		field    string
		category error
	}{
		{
			name:     "empty code",
			student:  &models.Student{StudentCode: "  ", FullName: "Jane"},
			username: "jdoe", password: "secret",
			field: "studentCode", category: apperrors.ErrValidationFailed,
		},
		{
			name:     "duplicate code",
			student:  &models.Student{StudentCode: "ST001", FullName: "Jane"},
			username: "jdoe", password: "secret",
			setup: func(f *studentFixture) {
				f.students.On("StudentCodeExists", mock.Anything, "ST001").Return(true, nil)
			},
			field: "studentCode", category: apperrors.ErrConflict,
		},
		{
			name:     "duplicate legacy id",
			student:  &models.Student{StudentCode: "ST001", StudentID: "L-1", FullName: "Jane"},
			username: "jdoe", password: "secret",
			setup: func(f *studentFixture) {
				f.students.On("StudentCodeExists", mock.Anything, "ST001").Return(false, nil)
				f.students.On("StudentIDExists", mock.Anything, "L-1").Return(true, nil)
			},
			field: "studentId", category: apperrors.ErrConflict,
		},
		{
			name:     "blank full name",
			student:  &models.Student{StudentCode: "ST001", FullName: " "},
			username: "jdoe", password: "secret",
			setup: func(f *studentFixture) {
				f.students.On("StudentCodeExists", mock.Anything, "ST001").Return(false, nil)
			},
			field: "fullName", category: apperrors.ErrValidationFailed,
		},
		{
			name:     "missing password",
			student:  &models.Student{StudentCode: "ST001", FullName: "Jane"},
			username: "jdoe", password: "",
			setup: func(f *studentFixture) {
				f.students.On("StudentCodeExists", mock.Anything, "ST001").Return(false, nil)
			},
			field: "password", category: apperrors.ErrValidationFailed,
		},
		{
			name:     "duplicate email",
			student:  &models.Student{StudentCode: "ST001", FullName: "Jane", Email: strPtr("a@b.io")},
			username: "jdoe", password: "secret",
			setup: func(f *studentFixture) {
				f.students.On("StudentCodeExists", mock.Anything, "ST001").Return(false, nil)
				f.users.On("UsernameExists", mock.Anything, "jdoe").Return(false, nil)
				f.users.On("EmailExists", mock.Anything, "a@b.io").Return(true, nil)
			},
			field: "email", category: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStudentFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.CreateStudent(context.Background(), tt.student, tt.username, tt.password)

			require.ErrorIs(t, err, tt.category)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
			f.students.AssertNotCalled(t, "CreateWithUser", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateStudent_StorageFailurePropagates(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()

	f.students.On("StudentCodeExists", ctx, "ST001").Return(false, nil)
	f.users.On("UsernameExists", ctx, "jdoe").Return(false, nil)
	f.students.On("CreateWithUser", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrTransientStorage)

	created, err := f.svc.CreateStudent(ctx, &models.Student{StudentCode: "ST001", FullName: "Jane"}, "jdoe", "secret")

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrTransientStorage)
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	existing := &models.Student{ID: 1, StudentCode: "ST001", FullName: "Jane", UserID: 9, Status: models.StatusActive}

	t.Run("not found", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrStudentNotFound)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST001", FullName: "Jane"})

		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		f.students.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("code taken by another student", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(existing, nil)
		f.students.On("StudentCodeExists", ctx, "ST002").Return(true, nil)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST002", FullName: "Jane"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "studentCode", apperrors.FieldOf(err))
	})

	t.Run("keeps owner and status", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(existing, nil)
		f.students.On("Update", ctx, mock.MatchedBy(func(s *models.Student) bool {
			return s.UserID == 9 && s.Status == models.StatusActive && s.FullName == "Jane Doe"
		})).Return(nil)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST001", FullName: " Jane Doe "})

		require.NoError(t, err)
		f.students.AssertExpectations(t)
	})

	t.Run("legacy id held by another student", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(existing, nil)
		f.students.On("GetByCode", ctx, "L-200").Return(&models.Student{ID: 2, StudentCode: "ST002", StudentID: "L-200"}, nil)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST001", StudentID: "L-200", FullName: "Jane"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "studentId", apperrors.FieldOf(err))
		f.students.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unchanged legacy id is not rechecked", func(t *testing.T) {
		f := newStudentFixture()
		withLegacy := &models.Student{ID: 1, StudentCode: "ST001", StudentID: "L-100", FullName: "Jane", UserID: 9, Status: models.StatusActive}
		f.students.On("GetByID", ctx, int64(1)).Return(withLegacy, nil)
		f.students.On("Update", ctx, mock.MatchedBy(func(s *models.Student) bool {
			return s.StudentID == "L-100"
		})).Return(nil)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST001", StudentID: " L-100 ", FullName: "Jane"})

		require.NoError(t, err)
		f.students.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
		f.students.AssertExpectations(t)
	})

	t.Run("legacy id resolving to the same student", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("GetByID", ctx, int64(1)).Return(existing, nil)
		f.students.On("GetByCode", ctx, "ST001").Return(existing, nil)
		f.students.On("Update", ctx, mock.Anything).Return(nil)

		err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, StudentCode: "ST001", StudentID: "ST001", FullName: "Jane"})

		require.NoError(t, err)
		f.students.AssertExpectations(t)
	})
}

func TestUpdateStudentBasicInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("missing student", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("UpdateBasicInfo", ctx, int64(404), mock.Anything).Return(apperrors.ErrStudentNotFound)

		err := f.svc.UpdateStudentBasicInfo(ctx, 404, repositories.StudentBasicInfo{Phone: strPtr("555")})

		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("trims optional fields", func(t *testing.T) {
		f := newStudentFixture()
		f.students.On("UpdateBasicInfo", ctx, int64(1), mock.MatchedBy(func(info repositories.StudentBasicInfo) bool {
			return *info.Address == "12 Main St" && info.Gender == nil
		})).Return(nil)

		err := f.svc.UpdateStudentBasicInfo(ctx, 1, repositories.StudentBasicInfo{Address: strPtr("  12 Main St "), Gender: strPtr("  ")})

		require.NoError(t, err)
		f.students.AssertExpectations(t)
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		f := newStudentFixture()

		err := f.svc.UpdateStudentBasicInfo(ctx, 0, repositories.StudentBasicInfo{})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		f.students.AssertNotCalled(t, "UpdateBasicInfo", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteStudent(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()

	f.students.On("DeleteWithUser", ctx, int64(4)).Return(true, nil).Once()
	f.students.On("DeleteWithUser", ctx, int64(4)).Return(false, nil).Once()

	deleted, err := f.svc.DeleteStudent(ctx, 4)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.svc.DeleteStudent(ctx, 4)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = f.svc.DeleteStudent(ctx, 0)
	require.NoError(t, err)
	assert.False(t, deleted)
	f.students.AssertNumberOfCalls(t, "DeleteWithUser", 2)
}

func TestGetStudentByID_AttachesUser(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()
	f.students.On("GetByID", ctx, int64(2)).Return(&models.Student{ID: 2, UserID: 5}, nil)
	f.users.On("GetByID", ctx, int64(5)).Return(&models.User{ID: 5, Username: "jdoe"}, nil)

	student, err := f.svc.GetStudentByID(ctx, 2)

	require.NoError(t, err)
	require.NotNil(t, student.User)
	assert.Equal(t, "jdoe", student.User.Username)
}

func TestCalculateGPA(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()
	f.enrollments.On("GetByStudentID", ctx, int64(1)).Return([]*models.Enrollment{
		{Grade: strPtr("A"), Course: &models.Course{Credits: intPtr(4)}},
		{Grade: strPtr("C"), Course: &models.Course{Credits: intPtr(2)}},
		{Grade: nil, Course: &models.Course{Credits: intPtr(3)}},
	}, nil)

	gpa, ok, err := f.svc.CalculateGPA(ctx, 1)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 3.33, gpa, 0.01)
}

func TestCalculateGPA_NoGradedCourses(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()
	f.enrollments.On("GetByStudentID", ctx, int64(1)).Return([]*models.Enrollment{}, nil)

	_, ok, err := f.svc.CalculateGPA(ctx, 1)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCalculateGPA_StorageError(t *testing.T) {
	f := newStudentFixture()
	ctx := context.Background()
	f.enrollments.On("GetByStudentID", ctx, int64(1)).Return(nil, errors.New("boom"))

	_, _, err := f.svc.CalculateGPA(ctx, 1)

	assert.Error(t, err)
}
