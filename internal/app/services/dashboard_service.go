package services

import (
	"context"
	"fmt"

	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
)

// SearchResultLimit caps each list returned by Search.
const SearchResultLimit = 10

type DashboardStats struct {
	TotalStudents    int64 `json:"totalStudents"`
	ActiveStudents   int64 `json:"activeStudents"`
	TotalCourses     int64 `json:"totalCourses"`
	ActiveCourses    int64 `json:"activeCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
	TotalUsers       int64 `json:"totalUsers"`
}

type SearchResult struct {
	Term     string            `json:"term"`
	Courses  []*models.Course  `json:"courses"`
	Students []*models.Student `json:"students"`
}

// DashboardService serves the read-only overview pages.
type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	// Search finds active courses and students matching term. A blank term
	// matches nothing.
	Search(ctx context.Context, term string) (*SearchResult, error)
}

type dashboardServiceImpl struct {
	userRepo       repositories.IUserRepository
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
}

func NewDashboardService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
) DashboardService {
	return &dashboardServiceImpl{
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	counters := []struct {
		name  string
		dest  *int64
		count func(context.Context) (int64, error)
	}{
		{"students", &stats.TotalStudents, func(ctx context.Context) (int64, error) { return s.studentRepo.CountByStatus(ctx, "") }},
		{"active students", &stats.ActiveStudents, func(ctx context.Context) (int64, error) {
			return s.studentRepo.CountByStatus(ctx, models.StatusActive)
		}},
		{"courses", &stats.TotalCourses, func(ctx context.Context) (int64, error) { return s.courseRepo.CountByStatus(ctx, "") }},
		{"active courses", &stats.ActiveCourses, func(ctx context.Context) (int64, error) {
			return s.courseRepo.CountByStatus(ctx, models.StatusActive)
		}},
		{"enrollments", &stats.TotalEnrollments, s.enrollmentRepo.Count},
		{"users", &stats.TotalUsers, s.userRepo.Count},
	}

	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("error counting %s: %w", c.name, err)
		}
		*c.dest = n
	}
	return stats, nil
}

func (s *dashboardServiceImpl) Search(ctx context.Context, term string) (*SearchResult, error) {
	result := &SearchResult{Term: term, Courses: []*models.Course{}, Students: []*models.Student{}}
	if isBlank(term) {
		return result, nil
	}

	courses, err := s.courseRepo.Search(ctx, term, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}
	students, err := s.studentRepo.Search(ctx, term, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}

	result.Courses = courses
	result.Students = students
	return result, nil
}
