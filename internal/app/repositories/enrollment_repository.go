package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/logger"
)

var enrollmentColumns = []string{
	"sc.id", "sc.student_id", "sc.course_id", "sc.enrollment_date", "sc.grade", "sc.status",
}

// EnrollmentRepository handles the student_courses ledger
type EnrollmentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

func NewEnrollmentRepository(pg *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{db: pg, sb: newStatementBuilder()}
}

func enrollmentDest(e *models.Enrollment) []any {
	return []any{&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Grade, &e.Status}
}

// Create inserts the enrollment. A second enrollment for the same pair is
// rejected by the student_courses unique constraint and reported as a conflict.
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Insert("student_courses").
		Columns("student_id", "course_id", "enrollment_date", "grade", "status").
		Values(e.StudentID, e.CourseID, e.EnrollmentDate, e.Grade, e.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).
			Int64("studentID", e.StudentID).
			Int64("courseID", e.CourseID).
			Msg("Error creating enrollment")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).
		From("student_courses sc").
		Where(squirrel.Eq{"sc.student_id": studentID, "sc.course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e := &models.Enrollment{}
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(enrollmentDest(e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).
			Int64("studentID", studentID).
			Int64("courseID", courseID).
			Msg("Error getting enrollment")
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return e, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").From("student_courses").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var exists bool
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// GetByStudentID returns the student's enrollments with Course populated.
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	cols := append(append([]string{}, enrollmentColumns...), courseColumns...)
	sql, args, err := r.sb.Select(cols...).
		From("student_courses sc").
		Join("courses c ON c.id = sc.course_id").
		Where(squirrel.Eq{"sc.student_id": studentID}).
		OrderBy("c.course_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student enrollments query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying student enrollments")
		return nil, fmt.Errorf("error querying student enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{Course: &models.Course{}}
		c := e.Course
		dest := append(enrollmentDest(e),
			&c.ID, &c.CourseCode, &c.CourseName, &c.Description, &c.Credits, &c.Department,
			&c.Status, &c.CreatedAt, &c.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

// GetByCourseID returns the course's enrollments with Student populated.
func (r *EnrollmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	cols := append(append([]string{}, enrollmentColumns...), studentColumns...)
	sql, args, err := r.sb.Select(cols...).
		From("student_courses sc").
		Join("students s ON s.id = sc.student_id").
		Where(squirrel.Eq{"sc.course_id": courseID}).
		OrderBy("s.full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course enrollments query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying course enrollments")
		return nil, fmt.Errorf("error querying course enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{}
		student, err := scanStudent(rows, enrollmentDest(e)...)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Student = student
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

// Update writes grade and status for the (student, course) pair. It reports
// false when the pair is not enrolled.
func (r *EnrollmentRepository) Update(ctx context.Context, e *models.Enrollment) (bool, error) {
	sql, args, err := r.sb.Update("student_courses").
		Set("grade", e.Grade).
		Set("status", e.Status).
		Where(squirrel.Eq{"student_id": e.StudentID, "course_id": e.CourseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Int64("studentID", e.StudentID).
			Int64("courseID", e.CourseID).
			Msg("Error updating enrollment")
		return false, fmt.Errorf("error updating enrollment: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Delete("student_courses").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Int64("studentID", studentID).
			Int64("courseID", courseID).
			Msg("Error deleting enrollment")
		return false, fmt.Errorf("error deleting enrollment: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("student_courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var n int64
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return n, nil
}
