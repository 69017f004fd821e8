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

var studentColumns = []string{
	"s.id", "s.student_code", "s.student_id", "s.full_name", "s.date_of_birth", "s.gender",
	"s.address", "s.phone", "s.email", "s.academic_program", "s.year", "s.gpa", "s.user_id",
	"s.enrollment_date", "s.status", "s.created_at", "s.updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db    *db.PostgresDB
	sb    squirrel.StatementBuilderType
	users *UserRepository
}

func NewStudentRepository(pg *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db:    pg,
		sb:    newStatementBuilder(),
		users: NewUserRepository(pg),
	}
}

// scanStudent scans a row whose trailing columns are studentColumns. Columns
// selected ahead of them go into lead.
func scanStudent(row pgx.Row, lead ...any) (*models.Student, error) {
	s := &models.Student{}
	var legacyID *string
	dest := append(lead[:len(lead):len(lead)],
		&s.ID, &s.StudentCode, &legacyID, &s.FullName, &s.DateOfBirth, &s.Gender,
		&s.Address, &s.Phone, &s.Email, &s.AcademicProgram, &s.Year, &s.GPA, &s.UserID,
		&s.EnrollmentDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.StudentID = helpers.StringValue(legacyID)
	return s, nil
}

// CreateWithUser inserts user and then student in a single transaction. A transient
// failure restarts the transaction from the user insert, so nothing from a failed
// attempt survives. On success both records carry their new ids and student.UserID
// equals user.ID.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	err := r.db.WithRetryTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.users.insert(ctx, tx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return r.insert(ctx, tx, student)
	})
	if err != nil {
		user.ID, student.ID, student.UserID = 0, 0, 0
		return err
	}

	logger.Info().
		Int64("userID", user.ID).
		Int64("studentID", student.ID).
		Str("studentCode", student.StudentCode).
		Msg("Student account created")
	return nil
}

func (r *StudentRepository) insert(ctx context.Context, q db.Querier, s *models.Student) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("students").
		Columns("student_code", "student_id", "full_name", "date_of_birth", "gender", "address",
			"phone", "email", "academic_program", "year", "gpa", "user_id", "enrollment_date",
			"status", "created_at", "updated_at").
		Values(s.StudentCode, helpers.NullIfEmpty(s.StudentID), s.FullName, s.DateOfBirth, s.Gender, s.Address,
			s.Phone, s.Email, s.AcademicProgram, s.Year, s.GPA, s.UserID, s.EnrollmentDate,
			s.Status, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&s.ID); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).
			Int64("userID", s.UserID).
			Str("studentCode", s.StudentCode).
			Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).From("students s")
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.Conn().QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error getting student")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

// GetByCode finds a student whose student code or legacy id equals code.
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Or{
		squirrel.Eq{"s.student_code": code},
		squirrel.Eq{"s.student_id": code},
	})
}

func (r *StudentRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// GetAll returns every student ordered by student code.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().OrderBy("s.student_code ASC"))
}

// Update overwrites the profile, leaving user_id and created_at alone.
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"student_code":     s.StudentCode,
			"student_id":       helpers.NullIfEmpty(s.StudentID),
			"full_name":        s.FullName,
			"date_of_birth":    s.DateOfBirth,
			"gender":           s.Gender,
			"address":          s.Address,
			"phone":            s.Phone,
			"email":            s.Email,
			"academic_program": s.AcademicProgram,
			"year":             s.Year,
			"gpa":              s.GPA,
			"enrollment_date":  s.EnrollmentDate,
			"status":           s.Status,
			"updated_at":       now,
		}).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	s.UpdatedAt = now
	return nil
}

// UpdateBasicInfo changes only date of birth, gender, address and phone.
func (r *StudentRepository) UpdateBasicInfo(ctx context.Context, id int64, info StudentBasicInfo) error {
	sql, args, err := r.sb.Update("students").
		Set("date_of_birth", info.DateOfBirth).
		Set("gender", info.Gender).
		Set("address", info.Address).
		Set("phone", info.Phone).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student info query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student basic info")
		return fmt.Errorf("error updating student basic info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteWithUser removes, in one transaction, the student's enrollments, the
// student row and the owning user row, in that order.
func (r *StudentRepository) DeleteWithUser(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleted = false

		sql, args, err := r.sb.Delete("student_courses").Where(squirrel.Eq{"student_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete enrollments query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting student enrollments: %w", err)
		}

		sql, args, err = r.sb.Delete("students").Where(squirrel.Eq{"id": id}).Suffix("RETURNING user_id").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete student query: %w", err)
		}
		var userID int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("error deleting student: %w", err)
		}

		if _, err := r.users.delete(ctx, tx, userID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return false, err
	}
	return deleted, nil
}

func (r *StudentRepository) exists(ctx context.Context, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := r.sb.Select("1").From("students").Where(where).Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	var exists bool
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

func (r *StudentRepository) StudentCodeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"student_code": code})
}

func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	return r.exists(ctx, squirrel.Or{
		squirrel.Eq{"student_code": studentID},
		squirrel.Eq{"student_id": studentID},
	})
}

// Search returns active students whose code, legacy id or name contains term, or
// who are enrolled in a course whose code or name contains it.
func (r *StudentRepository) Search(ctx context.Context, term string, limit uint64) ([]*models.Student, error) {
	pattern := "%" + helpers.EscapeLike(strings.TrimSpace(term)) + "%"
	return r.list(ctx, r.selectStudents().
		Distinct().
		LeftJoin("student_courses sc ON sc.student_id = s.id").
		LeftJoin("courses c ON c.id = sc.course_id").
		Where(squirrel.Eq{"s.status": models.StatusActive}).
		Where(squirrel.Or{
			squirrel.ILike{"s.student_code": pattern},
			squirrel.ILike{"s.student_id": pattern},
			squirrel.ILike{"s.full_name": pattern},
			squirrel.ILike{"c.course_code": pattern},
			squirrel.ILike{"c.course_name": pattern},
		}).
		OrderBy("s.full_name ASC").
		Limit(limit))
}

// CountByStatus counts students with status, or all students when status is empty.
func (r *StudentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("students")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var n int64
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}
