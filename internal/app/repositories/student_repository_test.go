package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/retry"
)

func newMockDB(t *testing.T, opts ...retry.Option) (pgxmock.PgxPoolIface, *db.PostgresDB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	opts = append([]retry.Option{retry.WithInitialDelay(time.Millisecond), retry.WithMaxDelay(time.Millisecond)}, opts...)
	return mock, db.Wrap(mock, opts...)
}

func newStudentPair() (*models.User, *models.Student) {
	user := &models.User{Username: "jdoe", Password: "hashed", Role: models.RoleStudent, Status: models.StatusActive}
	student := &models.Student{StudentCode: "ST001", FullName: "Jane Doe", Status: models.StatusActive}
	return user, student
}

func idRow(id int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id"}).AddRow(id)
}

func TestStudentRepository_CreateWithUser_Commits(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)
	user, student := newStudentPair()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(idRow(7))
	mock.ExpectQuery("INSERT INTO students").WillReturnRows(idRow(11))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithUser(context.Background(), user, student))

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(11), student.ID)
	assert.Equal(t, user.ID, student.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_CreateWithUser_ConflictRollsBack(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)
	user, student := newStudentPair()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(idRow(7))
	mock.ExpectQuery("INSERT INTO students").WillReturnError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "students_student_code_key",
	})
	mock.ExpectRollback()

	err := repo.CreateWithUser(context.Background(), user, student)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "studentCode", apperrors.FieldOf(err))
	assert.Zero(t, user.ID)
	assert.Zero(t, student.ID)
	assert.Zero(t, student.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_CreateWithUser_RetriesTransientFailure(t *testing.T) {
	mock, pg := newMockDB(t, retry.WithMaxAttempts(3))
	repo := NewStudentRepository(pg)
	user, student := newStudentPair()

	mock.ExpectBegin().WillReturnError(&pgconn.PgError{Code: "08006"})

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(idRow(7))
	mock.ExpectQuery("INSERT INTO students").WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(idRow(8))
	mock.ExpectQuery("INSERT INTO students").WillReturnRows(idRow(12))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithUser(context.Background(), user, student))

	assert.Equal(t, int64(8), user.ID)
	assert.Equal(t, int64(8), student.UserID)
	assert.Equal(t, int64(12), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_CreateWithUser_GivesUpAfterMaxAttempts(t *testing.T) {
	mock, pg := newMockDB(t, retry.WithMaxAttempts(2))
	repo := NewStudentRepository(pg)
	user, student := newStudentPair()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "40P01"})
		mock.ExpectRollback()
	}

	err := repo.CreateWithUser(context.Background(), user, student)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTransientStorage))
	assert.Zero(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_DeleteWithUser(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_courses").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectQuery("DELETE FROM students").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(9)))
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(9)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteWithUser(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_DeleteWithUser_Missing(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_courses").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("DELETE FROM students").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}))
	mock.ExpectCommit()

	deleted, err := repo.DeleteWithUser(context.Background(), 5)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_DeleteWithUser_FailureRollsBack(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_courses").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("DELETE FROM students").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(9)))
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(9)).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	deleted, err := repo.DeleteWithUser(context.Background(), 5)

	require.Error(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_StudentIDExistsChecksBothCodes(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)

	mock.ExpectQuery(`SELECT EXISTS .*FROM students WHERE \(student_code = \$1 OR student_id = \$2\)`).
		WithArgs("S-42", "S-42").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.StudentIDExists(context.Background(), "S-42")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_GetByID_NotFound(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)

	mock.ExpectQuery("FROM students s WHERE s.id = ").WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 3)

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_UpdateBasicInfo(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewStudentRepository(pg)
	phone := "555-0100"
	info := StudentBasicInfo{Phone: &phone}

	query := `^UPDATE students SET date_of_birth = \$1, gender = \$2, address = \$3, phone = \$4, updated_at = \$5 WHERE id = \$6$`
	mock.ExpectExec(query).
		WithArgs(info.DateOfBirth, info.Gender, info.Address, &phone, pgxmock.AnyArg(), int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(query).
		WithArgs(info.DateOfBirth, info.Gender, info.Address, &phone, pgxmock.AnyArg(), int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateBasicInfo(context.Background(), 8, info))
	assert.ErrorIs(t, repo.UpdateBasicInfo(context.Background(), 9, info), apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
