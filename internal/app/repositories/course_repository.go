package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
)

var courseColumns = []string{
	"c.id", "c.course_code", "c.course_name", "c.description", "c.credits", "c.department",
	"c.status", "c.created_at", "c.updated_at",
}

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

func NewCourseRepository(pg *db.PostgresDB) *CourseRepository {
	return &CourseRepository{db: pg, sb: newStatementBuilder()}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.CourseCode, &c.CourseName, &c.Description, &c.Credits, &c.Department,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name", "description", "credits", "department", "status", "created_at", "updated_at").
		Values(course.CourseCode, course.CourseName, course.Description, course.Credits, course.Department,
			course.Status, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	course.CreatedAt, course.UpdatedAt = now, now
	return nil
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses c").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.Conn().QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error getting course")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.course_code": code})
}

func (r *CourseRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// GetAll returns every course ordered by course code.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, r.sb.Select(courseColumns...).From("courses c").OrderBy("c.course_code ASC"))
}

// GetByStudentID returns the courses the student is enrolled in.
func (r *CourseRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return r.list(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Join("student_courses sc ON sc.course_id = c.id").
		Where(squirrel.Eq{"sc.student_id": studentID}).
		OrderBy("c.course_code ASC"))
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"course_code": course.CourseCode,
			"course_name": course.CourseName,
			"description": course.Description,
			"credits":     course.Credits,
			"department":  course.Department,
			"status":      course.Status,
			"updated_at":  now,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	course.UpdatedAt = now
	return nil
}

// Delete removes the course's enrollments and then the course, in one transaction.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("student_courses").Where(squirrel.Eq{"course_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete enrollments query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}

		sql, args, err = r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete course query: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		deleted = cmdTag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		return false, err
	}
	return deleted, nil
}

func (r *CourseRepository) CourseCodeExists(ctx context.Context, code string) (bool, error) {
	sql, args, err := r.sb.Select("1").From("courses").
		Where(squirrel.Eq{"course_code": code}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course exists query: %w", err)
	}

	var exists bool
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// Search returns active courses whose code or name contains term.
func (r *CourseRepository) Search(ctx context.Context, term string, limit uint64) ([]*models.Course, error) {
	pattern := "%" + helpers.EscapeLike(strings.TrimSpace(term)) + "%"
	return r.list(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.status": models.StatusActive}).
		Where(squirrel.Or{
			squirrel.ILike{"c.course_code": pattern},
			squirrel.ILike{"c.course_name": pattern},
		}).
		OrderBy("c.course_code ASC").
		Limit(limit))
}

// CountByStatus counts courses with status, or all courses when status is empty.
func (r *CourseRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("courses")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var n int64
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}
