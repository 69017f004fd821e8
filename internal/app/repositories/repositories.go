package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
)

// IUserRepository is the User Directory.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, password string) error
	Delete(ctx context.Context, id int64) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// IStudentRepository is the Student Directory.
type IStudentRepository interface {
	// CreateWithUser inserts user and then student (linked to the new user) in one
	// retryable transaction.
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateBasicInfo(ctx context.Context, id int64, info StudentBasicInfo) error
	// DeleteWithUser removes the student's enrollments, the student and its owning
	// user. It reports false when no student has the id.
	DeleteWithUser(ctx context.Context, id int64) (bool, error)
	StudentCodeExists(ctx context.Context, code string) (bool, error)
	// StudentIDExists matches the value against both the student code and the
	// legacy student id.
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	Search(ctx context.Context, term string, limit uint64) ([]*models.Student, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ICourseRepository is the Course Catalog.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	// Delete removes the course's enrollments and then the course.
	Delete(ctx context.Context, id int64) (bool, error)
	CourseCodeExists(ctx context.Context, code string) (bool, error)
	Search(ctx context.Context, term string, limit uint64) ([]*models.Course, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// IEnrollmentRepository is the Enrollment Ledger.
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) (bool, error)
	Delete(ctx context.Context, studentID, courseID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// IActivityLogRepository stores the audit trail. All reads are newest first.
type IActivityLogRepository interface {
	Create(ctx context.Context, log *models.ActivityLog) error
	GetAll(ctx context.Context, limit, offset uint64) ([]*models.ActivityLog, error)
	CountAll(ctx context.Context) (int64, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset uint64) ([]*models.ActivityLog, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	GetByAction(ctx context.Context, action string, limit, offset uint64) ([]*models.ActivityLog, error)
	CountByAction(ctx context.Context, action string) (int64, error)
	GetRecent(ctx context.Context, count uint64) ([]*models.ActivityLog, error)
}

// StudentBasicInfo is the self-service subset of a student profile.
type StudentBasicInfo struct {
	DateOfBirth *time.Time
	Gender      *string
	Address     *string
	Phone       *string
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	CourseRepository      *CourseRepository
	EnrollmentRepository  *EnrollmentRepository
	ActivityLogRepository *ActivityLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(pg),
		StudentRepository:     NewStudentRepository(pg),
		CourseRepository:      NewCourseRepository(pg),
		EnrollmentRepository:  NewEnrollmentRepository(pg),
		ActivityLogRepository: NewActivityLogRepository(pg),
	}
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
