package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

func TestEnrollmentRepository_Delete(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewEnrollmentRepository(pg)

	mock.ExpectExec("DELETE FROM student_courses").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM student_courses").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.Delete(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CreateDuplicatePair(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewEnrollmentRepository(pg)

	mock.ExpectQuery("INSERT INTO student_courses").WillReturnError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "student_courses_student_course_key",
	})

	err := repo.Create(context.Background(), &models.Enrollment{StudentID: 2, CourseID: 3, Status: models.EnrollmentEnrolled})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_GetByCourseID_PopulatesStudent(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewEnrollmentRepository(pg)
	enrolled := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	legacy := "L-7"
	grade := "A"

	cols := append(append([]string{}, enrollmentColumns...), studentColumns...)
	rows := pgxmock.NewRows(cols).AddRow(
		int64(30), int64(8), int64(3), enrolled, &grade, models.EnrollmentCompleted,
		int64(8), "ST008", &legacy, "Ada Byron", (*time.Time)(nil), (*string)(nil),
		(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*int)(nil), (*float64)(nil), int64(15),
		(*time.Time)(nil), models.StatusActive, enrolled, enrolled,
	)
	mock.ExpectQuery(`JOIN students s ON s.id = sc.student_id WHERE sc.course_id = \$1 ORDER BY s.full_name ASC`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	enrollments, err := repo.GetByCourseID(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	e := enrollments[0]
	assert.Equal(t, int64(30), e.ID)
	assert.Equal(t, "A", *e.Grade)
	require.NotNil(t, e.Student)
	assert.Equal(t, int64(8), e.Student.ID)
	assert.Equal(t, "L-7", e.Student.StudentID)
	assert.Equal(t, int64(15), e.Student.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
