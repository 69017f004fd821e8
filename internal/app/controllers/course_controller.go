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

// CourseController handles the course catalog.
type CourseController struct {
	activityRecorder
	courseService services.CourseService
}

func NewCourseController(courseService services.CourseService, activityService services.ActivityLogService) *CourseController {
	return &CourseController{
		activityRecorder: activityRecorder{activity: activityService},
		courseService:    courseService,
	}
}

// GetAllCourses
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponses(courses)))
}

// GetCourseByID
// @Summary Get course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course)))
}

// CreateCourse
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel()
	if err := c.courseService.CreateCourse(ctx.Request.Context(), course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionCreate, services.EntityCourse, int64Ptr(course.ID),
		fmt.Sprintf("Created course %s - %s", course.CourseCode, course.CourseName))
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCourseResponse(course)))
}

// UpdateCourse
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel()
	course.ID = id
	if err := c.courseService.UpdateCourse(ctx.Request.Context(), course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityCourse, int64Ptr(id), "Updated course "+course.CourseCode)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course)))
}

// DeleteCourse
// @Summary Delete course
// @Description Deletes the course and every enrollment in it
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	deleted, err := c.courseService.DeleteCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deleted {
		middleware.HandleAPIError(ctx, apperrors.ErrCourseNotFound)
		return
	}

	c.record(ctx, services.ActionDelete, services.EntityCourse, int64Ptr(id), fmt.Sprintf("Deleted course %d", id))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}
