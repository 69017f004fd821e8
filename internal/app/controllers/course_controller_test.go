package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/mocks"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

type courseRouterFixture struct {
	courses     *mocks.CourseRepository
	students    *mocks.StudentRepository
	enrollments *mocks.EnrollmentRepository
	logs        *mocks.ActivityLogRepository
	router      *gin.Engine
}

// newCourseRouter serves the course and enrollment handlers as admin user 1,
// backed by real services over mocked repositories.
func newCourseRouter() *courseRouterFixture {
	gin.SetMode(gin.TestMode)
	f := &courseRouterFixture{
		courses:     new(mocks.CourseRepository),
		students:    new(mocks.StudentRepository),
		enrollments: new(mocks.EnrollmentRepository),
		logs:        new(mocks.ActivityLogRepository),
	}
	courseService := services.NewCourseService(f.courses, f.students, f.enrollments)
	activityService := services.NewActivityLogService(f.logs)
	courses := NewCourseController(courseService, activityService)
	enrollments := NewEnrollmentController(courseService, activityService)

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		c.Set(appauth.ContextUserID, int64(1))
		c.Set(appauth.ContextUsername, "admin")
		c.Set(appauth.ContextRole, models.RoleAdmin)
	})
	f.router.POST("/courses", courses.CreateCourse)
	f.router.GET("/courses/:id", courses.GetCourseByID)
	f.router.DELETE("/courses/:id", courses.DeleteCourse)
	f.router.POST("/courses/:id/students", enrollments.AssignStudent)
	return f
}

func (f *courseRouterFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func loggedAction(action, entityType string) interface{} {
	return mock.MatchedBy(func(l *models.ActivityLog) bool {
		return l.Action == action && l.EntityType == entityType && l.Username == "admin"
	})
}

func TestCreateCourseHandler(t *testing.T) {
	f := newCourseRouter()
	f.courses.On("CourseCodeExists", mock.Anything, "CS101").Return(false, nil)
	f.courses.On("Create", mock.Anything, mock.AnythingOfType("*models.Course")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Course).ID = 12 }).
		Return(nil)
	f.logs.On("Create", mock.Anything, loggedAction(services.ActionCreate, services.EntityCourse)).Return(nil)

	w := f.do(http.MethodPost, "/courses", `{"courseCode":"CS101","courseName":"Intro","credits":3}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool               `json:"success"`
		Data    dto.CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(12), resp.Data.ID)
	assert.Equal(t, models.StatusActive, resp.Data.Status)
	f.logs.AssertExpectations(t)
}

func TestCreateCourseHandler_DuplicateCode(t *testing.T) {
	f := newCourseRouter()
	f.courses.On("CourseCodeExists", mock.Anything, "CS101").Return(true, nil)

	w := f.do(http.MethodPost, "/courses", `{"courseCode":"CS101","courseName":"Intro"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "courseCode", resp.Error.Field)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCourseHandler_CreditsOutOfRange(t *testing.T) {
	f := newCourseRouter()

	w := f.do(http.MethodPost, "/courses", `{"courseCode":"CS101","courseName":"Intro","credits":11}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.courses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetCourseHandler_BadID(t *testing.T) {
	f := newCourseRouter()

	w := f.do(http.MethodGet, "/courses/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCourseHandler_Missing(t *testing.T) {
	f := newCourseRouter()
	f.courses.On("Delete", mock.Anything, int64(9)).Return(false, nil)

	w := f.do(http.MethodDelete, "/courses/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignStudentHandler(t *testing.T) {
	f := newCourseRouter()
	f.students.On("GetByID", mock.Anything, int64(3)).Return(&models.Student{ID: 3, UserID: 30, FullName: "Jane"}, nil)
	f.courses.On("GetByID", mock.Anything, int64(4)).Return(&models.Course{ID: 4, CourseCode: "CS101"}, nil)
	f.enrollments.On("Exists", mock.Anything, int64(3), int64(4)).Return(false, nil)
	f.enrollments.On("Create", mock.Anything, mock.AnythingOfType("*models.Enrollment")).Return(nil)
	f.logs.On("Create", mock.Anything, loggedAction(services.ActionAssign, services.EntityEnrollment)).Return(nil)

	w := f.do(http.MethodPost, "/courses/4/students", `{"studentId":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.enrollments.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestAssignStudentHandler_UnknownStudent(t *testing.T) {
	f := newCourseRouter()
	f.students.On("GetByID", mock.Anything, int64(3)).Return(nil, apperrors.ErrStudentNotFound)

	w := f.do(http.MethodPost, "/courses/4/students", `{"studentId":3}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
