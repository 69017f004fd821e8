package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/sims/internal/app/grading"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/pkg/validation"
)

// StudentService coordinates the Student Directory with the User Directory and
// the Enrollment Ledger.
type StudentService interface {
	// CreateStudent creates a Student login (username/password) and the student
	// profile linked to it, atomically.
	CreateStudent(ctx context.Context, student *models.Student, username, password string) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByCode(ctx context.Context, code string) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	UpdateStudentBasicInfo(ctx context.Context, id int64, info repositories.StudentBasicInfo) error
	// DeleteStudent reports false when there is no such student.
	DeleteStudent(ctx context.Context, id int64) (bool, error)
	GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	GetEnrollmentsByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	// CalculateGPA returns ok=false when no graded, credited enrollment exists.
	CalculateGPA(ctx context.Context, studentID int64) (gpa float64, ok bool, err error)
}

type studentServiceImpl struct {
	studentRepo    repositories.IStudentRepository
	userRepo       repositories.IUserRepository
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	now            func() time.Time
}

func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		now:            time.Now,
	}
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student, username, password string) (*models.Student, error) {
	if student == nil {
		return nil, apperrors.NewValidationError("student", "student is required")
	}

	student.StudentCode = strings.TrimSpace(student.StudentCode)
	if student.StudentCode == "" {
		return nil, apperrors.NewValidationError("studentCode", "student code is required")
	}
	exists, err := s.studentRepo.StudentCodeExists(ctx, student.StudentCode)
	if err != nil {
		return nil, fmt.Errorf("error checking student code: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("studentCode", "student code already exists")
	}

	student.StudentID = strings.TrimSpace(student.StudentID)
	if student.StudentID != "" {
		exists, err := s.studentRepo.StudentIDExists(ctx, student.StudentID)
		if err != nil {
			return nil, fmt.Errorf("error checking student id: %w", err)
		}
		if exists {
			return nil, apperrors.NewConflictError("studentId", "student id already exists")
		}
	}

	student.FullName = strings.TrimSpace(student.FullName)
	if err := validation.NewStringValidation("fullName", student.FullName).
		WithMaxLength(validation.NameMaxLength).
		Validate(); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if err := validation.First(
		validation.NewStringValidation("username", username).
			WithMinLength(validation.UsernameMinLength).
			WithMaxLength(validation.UsernameMaxLength).
			WithPattern(validation.UsernamePattern).
			Validate(),
		validation.NewStringValidation("password", password).Validate(),
	); err != nil {
		return nil, err
	}
	exists, err = s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("username", "username already exists")
	}

	student.Email = helpers.TrimmedPtr(student.Email)
	email := student.EmailValue()
	if email != "" {
		exists, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return nil, apperrors.NewConflictError("email", "email already exists")
		}
	}

	now := s.now().UTC()
	if student.EnrollmentDate == nil {
		student.EnrollmentDate = &now
	}
	if student.Status == "" {
		student.Status = models.StatusActive
	}

	user := &models.User{
		Username: username,
		Password: password,
		Email:    email,
		Phone:    student.Phone,
		Role:     models.RoleStudent,
		Status:   models.StatusActive,
	}

	if err := s.studentRepo.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}
	student.User = user

	logger.Info().
		Int64("studentID", student.ID).
		Int64("userID", user.ID).
		Str("username", username).
		Msg("Student created")
	return student, nil
}

func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "student id must be positive")
	}
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, student.UserID)
	switch {
	case err == nil:
		student.User = user
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("userId", "user id must be positive")
	}
	return s.studentRepo.GetByUserID(ctx, userID)
}

func (s *studentServiceImpl) GetStudentByCode(ctx context.Context, code string) (*models.Student, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.studentRepo.GetByCode(ctx, code)
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student == nil || student.ID <= 0 {
		return apperrors.NewValidationError("id", "student id must be positive")
	}

	existing, err := s.studentRepo.GetByID(ctx, student.ID)
	if err != nil {
		return err
	}

	student.StudentCode = strings.TrimSpace(student.StudentCode)
	student.StudentID = strings.TrimSpace(student.StudentID)
	student.FullName = strings.TrimSpace(student.FullName)
	if err := validation.First(
		validation.NewStringValidation("studentCode", student.StudentCode).
			WithMaxLength(validation.CodeMaxLength).
			Validate(),
		validation.NewStringValidation("fullName", student.FullName).
			WithMaxLength(validation.NameMaxLength).
			Validate(),
	); err != nil {
		return err
	}

	if student.StudentCode != existing.StudentCode {
		exists, err := s.studentRepo.StudentCodeExists(ctx, student.StudentCode)
		if err != nil {
			return fmt.Errorf("error checking student code: %w", err)
		}
		if exists {
			return apperrors.NewConflictError("studentCode", "student code already exists")
		}
	}

	if student.StudentID != "" && student.StudentID != existing.StudentID {
		other, err := s.studentRepo.GetByCode(ctx, student.StudentID)
		switch {
		case err == nil && other.ID != student.ID:
			return apperrors.NewConflictError("studentId", "student id already exists")
		case err != nil && !errors.Is(err, apperrors.ErrResourceNotFound):
			return fmt.Errorf("error checking student id: %w", err)
		}
	}

	student.UserID = existing.UserID
	student.CreatedAt = existing.CreatedAt
	if student.Status == "" {
		student.Status = existing.Status
	}
	student.Email = helpers.TrimmedPtr(student.Email)

	return s.studentRepo.Update(ctx, student)
}

func (s *studentServiceImpl) UpdateStudentBasicInfo(ctx context.Context, id int64, info repositories.StudentBasicInfo) error {
	if id <= 0 {
		return apperrors.NewValidationError("id", "student id must be positive")
	}
	info.Gender = helpers.TrimmedPtr(info.Gender)
	info.Address = helpers.TrimmedPtr(info.Address)
	info.Phone = helpers.TrimmedPtr(info.Phone)
	return s.studentRepo.UpdateBasicInfo(ctx, id, info)
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	deleted, err := s.studentRepo.DeleteWithUser(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info().Int64("studentID", id).Msg("Student and owning user deleted")
	}
	return deleted, nil
}

func (s *studentServiceImpl) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("studentId", "student id must be positive")
	}
	return s.courseRepo.GetByStudentID(ctx, studentID)
}

func (s *studentServiceImpl) GetEnrollmentsByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("studentId", "student id must be positive")
	}
	return s.enrollmentRepo.GetByStudentID(ctx, studentID)
}

func (s *studentServiceImpl) CalculateGPA(ctx context.Context, studentID int64) (float64, bool, error) {
	enrollments, err := s.GetEnrollmentsByStudentID(ctx, studentID)
	if err != nil {
		return 0, false, err
	}
	gpa, ok := grading.CalculateGPA(enrollments)
	return gpa, ok, nil
}
