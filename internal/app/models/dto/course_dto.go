package dto

import (
	"time"

	"github.com/yigit/sims/internal/app/models"
)

// CourseRequest is used for both create and update.
type CourseRequest struct {
	CourseCode  string  `json:"courseCode" binding:"required,max=20" example:"CS101"`
	CourseName  string  `json:"courseName" binding:"required,max=100" example:"Introduction to Programming"`
	Description *string `json:"description,omitempty"`
	Credits     *int    `json:"credits,omitempty" binding:"omitempty,min=1,max=10" example:"3"`
	Department  *string `json:"department,omitempty" binding:"omitempty,max=100"`
	Status      string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type CourseResponse struct {
	ID          int64     `json:"id" example:"1"`
	CourseCode  string    `json:"courseCode" example:"CS101"`
	CourseName  string    `json:"courseName" example:"Introduction to Programming"`
	Description *string   `json:"description,omitempty"`
	Credits     *int      `json:"credits,omitempty" example:"3"`
	Department  *string   `json:"department,omitempty"`
	Status      string    `json:"status" example:"Active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r CourseRequest) ToModel() *models.Course {
	return &models.Course{
		CourseCode:  r.CourseCode,
		CourseName:  r.CourseName,
		Description: r.Description,
		Credits:     r.Credits,
		Department:  r.Department,
		Status:      r.Status,
	}
}

func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		CourseCode:  c.CourseCode,
		CourseName:  c.CourseName,
		Description: c.Description,
		Credits:     c.Credits,
		Department:  c.Department,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
