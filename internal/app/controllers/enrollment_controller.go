package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

// EnrollmentController manages who takes which course and the grades earned.
type EnrollmentController struct {
	activityRecorder
	courseService services.CourseService
}

func NewEnrollmentController(courseService services.CourseService, activityService services.ActivityLogService) *EnrollmentController {
	return &EnrollmentController{
		activityRecorder: activityRecorder{activity: activityService},
		courseService:    courseService,
	}
}

// GetCourseStudents
// @Summary Course roster
// @Description Enrollments of the course, each with its student
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse}
// @Router /courses/{id}/students [get]
func (c *EnrollmentController) GetCourseStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	enrollments, err := c.courseService.GetEnrollmentsByCourseID(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEnrollmentResponses(enrollments)))
}

// AssignStudent
// @Summary Enroll student
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AssignStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /courses/{id}/students [post]
func (c *EnrollmentController) AssignStudent(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssignStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.courseService.AssignStudentToCourse(ctx.Request.Context(), req.StudentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionAssign, services.EntityEnrollment, int64Ptr(enrollment.ID),
		fmt.Sprintf("Assigned student %d to course %d", req.StudentID, courseID))
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewEnrollmentResponse(enrollment)))
}

// RemoveStudent
// @Summary Unenroll student
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student removed"
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{id}/students/{studentId} [delete]
func (c *EnrollmentController) RemoveStudent(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	removed, err := c.courseService.RemoveStudentFromCourse(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !removed {
		middleware.HandleAPIError(ctx, apperrors.ErrEnrollmentNotFound)
		return
	}

	c.record(ctx, services.ActionRemove, services.EntityEnrollment, nil,
		fmt.Sprintf("Removed student %d from course %d", studentID, courseID))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student removed from course"))
}

// UpdateGrade
// @Summary Set grade
// @Description Sets the letter grade; null or empty clears it. The enrollment status is unchanged.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.UpdateGradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse "Grade updated"
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{id}/students/{studentId}/grade [put]
func (c *EnrollmentController) UpdateGrade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.UpdateGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.courseService.UpdateStudentGrade(ctx.Request.Context(), studentID, courseID, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !updated {
		middleware.HandleAPIError(ctx, apperrors.ErrEnrollmentNotFound)
		return
	}

	grade := "none"
	if req.Grade != nil && *req.Grade != "" {
		grade = *req.Grade
	}
	c.record(ctx, services.ActionGrade, services.EntityEnrollment, nil,
		fmt.Sprintf("Set grade %s for student %d in course %d", grade, studentID, courseID))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Grade updated"))
}

// UpdateStatus
// @Summary Set enrollment status
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.UpdateEnrollmentStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{id}/students/{studentId}/status [put]
func (c *EnrollmentController) UpdateStatus(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.UpdateEnrollmentStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.courseService.UpdateEnrollmentStatus(ctx.Request.Context(), studentID, courseID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !updated {
		middleware.HandleAPIError(ctx, apperrors.ErrEnrollmentNotFound)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityEnrollment, nil,
		fmt.Sprintf("Set status %s for student %d in course %d", req.Status, studentID, courseID))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Status updated"))
}
