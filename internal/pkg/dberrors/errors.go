package dberrors

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Named constraints from the migrations. Repositories translate violations of
// these into conflict errors on the matching field.
const (
	ConstraintUsersUsername      = "users_username_key"
	ConstraintUsersEmail         = "users_email_key"
	ConstraintStudentsCode       = "students_student_code_key"
	ConstraintStudentsLegacyID   = "students_student_id_key"
	ConstraintStudentsUser       = "students_user_id_key"
	ConstraintCoursesCode        = "courses_course_code_key"
	ConstraintStudentCoursesPair = "student_courses_student_course_key"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports any unique_violation regardless of constraint.
func IsUniqueViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// IsTransient reports whether err is expected to succeed when the whole
// transaction is attempted again: dropped connections, serialization
// failures, deadlocks and server restarts. Context cancellation never is.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if pgErr, ok := asPgError(err); ok {
		switch {
		case pgerrcode.IsConnectionException(pgErr.Code):
			return true
		case pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected,
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CrashShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow,
			pgErr.Code == pgerrcode.TooManyConnections:
			return true
		}
		return false
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
