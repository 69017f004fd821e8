package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sims/internal/app/controllers"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/middleware"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	User        *controllers.UserController
	Student     *controllers.StudentController
	Course      *controllers.CourseController
	Enrollment  *controllers.EnrollmentController
	ActivityLog *controllers.ActivityLogController
	Dashboard   *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	v1.POST("/auth/login", ctrl.Auth.Login)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	authenticated.POST("/auth/logout", ctrl.Auth.Logout)
	authenticated.GET("/auth/me", ctrl.Auth.Me)

	profile := authenticated.Group("/profile")
	{
		profile.GET("", ctrl.Profile.GetProfile)
		profile.PUT("", ctrl.Profile.UpdateProfile)
		profile.PUT("/password", ctrl.Profile.ChangePassword)
	}

	users := authenticated.Group("/users", adminOnly)
	{
		users.GET("", ctrl.User.GetAllUsers)
		users.GET("/:id", ctrl.User.GetUserByID)
		users.POST("", ctrl.User.CreateUser)
		users.PUT("/:id", ctrl.User.UpdateUser)
		users.DELETE("/:id", ctrl.User.DeleteUser)
	}

	students := authenticated.Group("/students")
	{
		// Static /me routes win over /:id.
		students.GET("/me", studentOnly, ctrl.Student.GetMyStudent)
		students.PUT("/me", studentOnly, ctrl.Student.UpdateMyStudent)
		students.GET("/me/courses", studentOnly, ctrl.Student.GetMyCourses)

		students.GET("", staff, ctrl.Student.GetAllStudents)
		students.GET("/:id", staff, ctrl.Student.GetStudentByID)
		students.GET("/:id/courses", staff, ctrl.Student.GetStudentCourses)
		students.GET("/:id/gpa", staff, ctrl.Student.GetStudentGPA)

		students.POST("", adminOnly, ctrl.Student.CreateStudent)
		students.PUT("/:id", adminOnly, ctrl.Student.UpdateStudent)
		students.DELETE("/:id", adminOnly, ctrl.Student.DeleteStudent)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.GetAllCourses)
		courses.GET("/:id", ctrl.Course.GetCourseByID)

		courseAdmin := courses.Group("", adminOnly)
		courseAdmin.POST("", ctrl.Course.CreateCourse)
		courseAdmin.PUT("/:id", ctrl.Course.UpdateCourse)
		courseAdmin.DELETE("/:id", ctrl.Course.DeleteCourse)

		courseAdmin.GET("/:id/students", ctrl.Enrollment.GetCourseStudents)
		courseAdmin.POST("/:id/students", ctrl.Enrollment.AssignStudent)
		courseAdmin.DELETE("/:id/students/:studentId", ctrl.Enrollment.RemoveStudent)
		courseAdmin.PUT("/:id/students/:studentId/grade", ctrl.Enrollment.UpdateGrade)
		courseAdmin.PUT("/:id/students/:studentId/status", ctrl.Enrollment.UpdateStatus)
	}

	logs := authenticated.Group("/activity-logs", adminOnly)
	{
		logs.GET("", ctrl.ActivityLog.GetAllLogs)
		logs.GET("/recent", ctrl.ActivityLog.GetRecentLogs)
		logs.GET("/users/:userId", ctrl.ActivityLog.GetLogsByUser)
		logs.GET("/actions/:action", ctrl.ActivityLog.GetLogsByAction)
	}

	authenticated.GET("/dashboard", adminOnly, ctrl.Dashboard.GetStats)
	authenticated.GET("/search", ctrl.Dashboard.Search)
}
