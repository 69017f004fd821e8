package services

import (
	"strings"

	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/auth"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	UserService        UserService
	StudentService     StudentService
	CourseService      CourseService
	ActivityLogService ActivityLogService
	AuthService        AuthService
	DashboardService   DashboardService
}

// NewServices wires the services onto repos. revocation may be nil.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	revocation auth.RevocationStore,
) *Services {
	return &Services{
		UserService:        NewUserService(repos.UserRepository, repos.StudentRepository),
		StudentService:     NewStudentService(repos.StudentRepository, repos.UserRepository, repos.CourseRepository, repos.EnrollmentRepository),
		CourseService:      NewCourseService(repos.CourseRepository, repos.StudentRepository, repos.EnrollmentRepository),
		ActivityLogService: NewActivityLogService(repos.ActivityLogRepository),
		AuthService:        NewAuthService(repos.UserRepository, jwtService, hasher, revocation),
		DashboardService:   NewDashboardService(repos.UserRepository, repos.StudentRepository, repos.CourseRepository, repos.EnrollmentRepository),
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
