package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

func TestCourseRepository_DeleteRemovesEnrollmentsFirst(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewCourseRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_courses WHERE course_id").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM courses WHERE id").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 4)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_DeleteMissing(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewCourseRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_courses").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM courses").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 4)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_CreateDuplicateCode(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewCourseRepository(pg)

	mock.ExpectQuery("INSERT INTO courses").WillReturnError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "courses_course_code_key",
	})

	credits := 3
	err := repo.Create(context.Background(), &models.Course{CourseCode: "CS101", CourseName: "Intro", Credits: &credits, Status: models.StatusActive})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "courseCode", apperrors.FieldOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
