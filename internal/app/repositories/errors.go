package repositories

import (
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/dberrors"
)

// uniqueConflicts maps named unique constraints onto the field they protect.
var uniqueConflicts = []struct {
	constraint string
	field      string
	message    string
}{
	{dberrors.ConstraintUsersUsername, "username", "username already exists"},
	{dberrors.ConstraintUsersEmail, "email", "email already exists"},
	{dberrors.ConstraintStudentsCode, "studentCode", "student code already exists"},
	{dberrors.ConstraintStudentsLegacyID, "studentId", "student id already exists"},
	{dberrors.ConstraintStudentsUser, "userId", "user already owns a student record"},
	{dberrors.ConstraintCoursesCode, "courseCode", "course code already exists"},
	{dberrors.ConstraintStudentCoursesPair, "courseId", "student is already enrolled in this course"},
}

// asConflict converts a unique violation into a conflict error on the field the
// violated constraint protects. It returns nil for any other error.
func asConflict(err error) error {
	if !dberrors.IsUniqueViolation(err) {
		return nil
	}
	for _, c := range uniqueConflicts {
		if dberrors.IsDuplicateConstraintError(err, c.constraint) {
			return apperrors.NewConflictError(c.field, c.message)
		}
	}
	return apperrors.NewConflictError("", "record already exists")
}
