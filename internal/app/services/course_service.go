package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/pkg/validation"
)

// CourseService coordinates the Course Catalog and the Enrollment Ledger.
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	// DeleteCourse removes the course and every enrollment in it. It reports
	// false when there is no such course.
	DeleteCourse(ctx context.Context, id int64) (bool, error)
	GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error)
	GetEnrollmentsByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	AssignStudentToCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	RemoveStudentFromCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	// UpdateStudentGrade sets (or, with nil, clears) the grade. The enrollment
	// status is left as it is.
	UpdateStudentGrade(ctx context.Context, studentID, courseID int64, grade *string) (bool, error)
	UpdateEnrollmentStatus(ctx context.Context, studentID, courseID int64, status string) (bool, error)
}

type courseServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	studentRepo    repositories.IStudentRepository
	enrollmentRepo repositories.IEnrollmentRepository
	now            func() time.Time
}

func NewCourseService(
	courseRepo repositories.ICourseRepository,
	studentRepo repositories.IStudentRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		now:            time.Now,
	}
}

func (s *courseServiceImpl) validateCourse(course *models.Course) error {
	course.CourseCode = strings.TrimSpace(course.CourseCode)
	course.CourseName = strings.TrimSpace(course.CourseName)
	course.Description = helpers.TrimmedPtr(course.Description)
	course.Department = helpers.TrimmedPtr(course.Department)

	return validation.First(
		validation.NewStringValidation("courseCode", course.CourseCode).
			WithMaxLength(validation.CodeMaxLength).
			Validate(),
		validation.NewStringValidation("courseName", course.CourseName).
			WithMaxLength(validation.NameMaxLength).
			Validate(),
		validation.ValidateRange("credits", course.Credits, validation.CreditsMin, validation.CreditsMax),
	)
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return apperrors.NewValidationError("course", "course is required")
	}
	if err := s.validateCourse(course); err != nil {
		return err
	}

	exists, err := s.courseRepo.CourseCodeExists(ctx, course.CourseCode)
	if err != nil {
		return fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return apperrors.NewConflictError("courseCode", "course code already exists")
	}

	if course.Status == "" {
		course.Status = models.StatusActive
	}
	return s.courseRepo.Create(ctx, course)
}

func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "course id must be positive")
	}
	return s.courseRepo.GetByID(ctx, id)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course == nil || course.ID <= 0 {
		return apperrors.NewValidationError("id", "course id must be positive")
	}

	existing, err := s.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	if err := s.validateCourse(course); err != nil {
		return err
	}

	if course.CourseCode != existing.CourseCode {
		exists, err := s.courseRepo.CourseCodeExists(ctx, course.CourseCode)
		if err != nil {
			return fmt.Errorf("error checking course code: %w", err)
		}
		if exists {
			return apperrors.NewConflictError("courseCode", "course code already exists")
		}
	}

	if course.Status == "" {
		course.Status = existing.Status
	}
	course.CreatedAt = existing.CreatedAt
	return s.courseRepo.Update(ctx, course)
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	deleted, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info().Int64("courseID", id).Msg("Course and its enrollments deleted")
	}
	return deleted, nil
}

func (s *courseServiceImpl) GetEnrollmentsByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("courseId", "course id must be positive")
	}
	return s.enrollmentRepo.GetByCourseID(ctx, courseID)
}

func (s *courseServiceImpl) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	enrollments, err := s.GetEnrollmentsByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	students := make([]*models.Student, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Student != nil {
			students = append(students, e.Student)
		}
	}
	return students, nil
}

func (s *courseServiceImpl) AssignStudentToCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if studentID <= 0 || courseID <= 0 {
		return nil, apperrors.NewValidationError("studentId", "student id and course id must be positive")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.UserID <= 0 {
		logger.Error().Int64("studentID", studentID).Msg("Student record has no owning user")
		return nil, apperrors.NewValidationError("studentId", "student record has an invalid user reference")
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if enrolled {
		return nil, apperrors.NewConflictError("courseId", "student is already enrolled in this course").
			WithDetails(map[string]interface{}{"studentId": studentID, "courseId": courseID})
	}

	enrollment := &models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: s.now().UTC(),
		Status:         models.EnrollmentEnrolled,
	}
	// A concurrent assignment that slips past the check above is rejected by the
	// unique constraint and comes back as a conflict.
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Student = student
	enrollment.Course = course

	logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student assigned to course")
	return enrollment, nil
}

func (s *courseServiceImpl) RemoveStudentFromCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	if studentID <= 0 || courseID <= 0 {
		return false, nil
	}
	return s.enrollmentRepo.Delete(ctx, studentID, courseID)
}

func (s *courseServiceImpl) UpdateStudentGrade(ctx context.Context, studentID, courseID int64, grade *string) (bool, error) {
	return s.updateEnrollment(ctx, studentID, courseID, func(e *models.Enrollment) {
		e.Grade = helpers.TrimmedPtr(grade)
	})
}

func (s *courseServiceImpl) UpdateEnrollmentStatus(ctx context.Context, studentID, courseID int64, status string) (bool, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return false, apperrors.NewValidationError("status", "status is required")
	}
	return s.updateEnrollment(ctx, studentID, courseID, func(e *models.Enrollment) {
		e.Status = status
	})
}

// updateEnrollment loads the pair, applies change and writes it back. A missing
// pair is reported as false without touching storage.
func (s *courseServiceImpl) updateEnrollment(ctx context.Context, studentID, courseID int64, change func(*models.Enrollment)) (bool, error) {
	if studentID <= 0 || courseID <= 0 {
		return false, nil
	}

	enrollment, err := s.enrollmentRepo.Get(ctx, studentID, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}

	change(enrollment)
	return s.enrollmentRepo.Update(ctx, enrollment)
}
