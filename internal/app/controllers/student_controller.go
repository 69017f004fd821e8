package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/grading"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

// StudentController handles student records and student self-service.
type StudentController struct {
	activityRecorder
	studentService services.StudentService
	authService    services.AuthService
}

func NewStudentController(studentService services.StudentService, authService services.AuthService, activityService services.ActivityLogService) *StudentController {
	return &StudentController{
		activityRecorder: activityRecorder{activity: activityService},
		studentService:   studentService,
		authService:      authService,
	}
}

func badDate(field string) error {
	return apperrors.NewValidationError(field, field+" must use the layout "+dto.DateLayout)
}

func studentFromUpdate(req dto.UpdateStudentRequest) (*models.Student, error) {
	dob, err := dto.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, badDate("dateOfBirth")
	}
	enrolled, err := dto.ParseDate(req.EnrollmentDate)
	if err != nil {
		return nil, badDate("enrollmentDate")
	}
	return &models.Student{
		StudentCode:     req.StudentCode,
		StudentID:       req.StudentID,
		FullName:        req.FullName,
		DateOfBirth:     dob,
		Gender:          req.Gender,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		AcademicProgram: req.AcademicProgram,
		Year:            req.Year,
		GPA:             req.GPA,
		EnrollmentDate:  enrolled,
		Status:          req.Status,
	}, nil
}

// transcript bundles the enrollments of studentID with the derived GPA.
func (c *StudentController) transcript(ctx *gin.Context, studentID int64) (*dto.StudentCoursesResponse, error) {
	enrollments, err := c.studentService.GetEnrollmentsByStudentID(ctx.Request.Context(), studentID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StudentCoursesResponse{
		Enrollments: dto.NewEnrollmentResponses(enrollments),
		GPA:         dto.GPAResponse{StudentID: studentID},
	}
	if gpa, ok := grading.CalculateGPA(enrollments); ok {
		rounded := grading.Round2(gpa)
		resp.GPA.GPA = &rounded
		resp.GPA.HasGrades = true
	}
	return resp, nil
}

// GetAllStudents
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponses(students)))
}

// GetStudentByID
// @Summary Get student
// @Description Returns the student with its login account
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// CreateStudent creates the student together with its login account
// @Summary Create student
// @Description Creates a Student-role user and the linked student record in one transaction
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student and login"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Student code, student id, username or email already exists"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable after retries"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := studentFromUpdate(dto.UpdateStudentRequest{
		StudentCode:     req.StudentCode,
		StudentID:       req.StudentID,
		FullName:        req.FullName,
		DateOfBirth:     req.DateOfBirth,
		Gender:          req.Gender,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		AcademicProgram: req.AcademicProgram,
		Year:            req.Year,
		GPA:             req.GPA,
		EnrollmentDate:  req.EnrollmentDate,
		Status:          req.Status,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	hashed, err := c.authService.HashPassword(req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.studentService.CreateStudent(ctx.Request.Context(), student, req.Username, hashed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionCreate, services.EntityStudent, int64Ptr(created.ID),
		fmt.Sprintf("Created student %s (%s)", created.FullName, created.StudentCode))
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewStudentResponse(created)))
}

// UpdateStudent
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student code or id already exists"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := studentFromUpdate(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	student.ID = id

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityStudent, int64Ptr(id), "Updated student "+student.StudentCode)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// DeleteStudent
// @Summary Delete student
// @Description Deletes the student, its enrollments and its login account
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	deleted, err := c.studentService.DeleteStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deleted {
		middleware.HandleAPIError(ctx, apperrors.ErrStudentNotFound)
		return
	}

	c.record(ctx, services.ActionDelete, services.EntityStudent, int64Ptr(id), fmt.Sprintf("Deleted student %d", id))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted"))
}

// GetStudentCourses
// @Summary Student transcript
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentCoursesResponse}
// @Router /students/{id}/courses [get]
func (c *StudentController) GetStudentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.transcript(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetStudentGPA
// @Summary Student GPA
// @Description Credit-weighted GPA over graded courses. hasGrades is false when nothing is graded.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.GPAResponse}
// @Router /students/{id}/gpa [get]
func (c *StudentController) GetStudentGPA(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	gpa, has, err := c.studentService.CalculateGPA(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.GPAResponse{StudentID: id, HasGrades: has}
	if has {
		rounded := grading.Round2(gpa)
		resp.GPA = &rounded
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

func (c *StudentController) currentStudent(ctx *gin.Context) (*models.Student, bool) {
	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), appauth.IdentityFrom(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return student, true
}

// GetMyStudent
// @Summary Own student record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Router /students/me [get]
func (c *StudentController) GetMyStudent(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// UpdateMyStudent
// @Summary Update own basic info
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMyStudentRequest true "Basic info"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /students/me [put]
func (c *StudentController) UpdateMyStudent(ctx *gin.Context) {
	var req dto.UpdateMyStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	dob, err := dto.ParseDate(req.DateOfBirth)
	if err != nil {
		middleware.HandleAPIError(ctx, badDate("dateOfBirth"))
		return
	}

	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}

	info := repositories.StudentBasicInfo{DateOfBirth: dob, Gender: req.Gender, Address: req.Address, Phone: req.Phone}
	if err := c.studentService.UpdateStudentBasicInfo(ctx.Request.Context(), student.ID, info); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityStudent, int64Ptr(student.ID), "Updated own student info")

	// The update is committed; a failed re-read must not turn it into an error.
	updated, err := c.studentService.GetStudentByID(ctx.Request.Context(), student.ID)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student info updated"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(updated)))
}

// GetMyCourses
// @Summary Own transcript
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentCoursesResponse}
// @Router /students/me/courses [get]
func (c *StudentController) GetMyCourses(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	resp, err := c.transcript(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
