package dto

import (
	"time"

	"github.com/yigit/sims/internal/app/models"
)

type AssignStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0" example:"1"`
}

// UpdateGradeRequest sets the grade; null or "" clears it.
type UpdateGradeRequest struct {
	Grade *string `json:"grade" binding:"omitempty,max=5" example:"B+"`
}

type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Enrolled Completed Dropped" example:"Completed"`
}

type EnrollmentResponse struct {
	ID             int64            `json:"id"`
	StudentID      int64            `json:"studentId"`
	CourseID       int64            `json:"courseId"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
	Grade          *string          `json:"grade,omitempty" example:"B+"`
	Status         string           `json:"status" example:"Enrolled"`
	Student        *StudentResponse `json:"student,omitempty"`
	Course         *CourseResponse  `json:"course,omitempty"`
}

func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		EnrollmentDate: e.EnrollmentDate,
		Grade:          e.Grade,
		Status:         e.Status,
	}
	if e.Student != nil {
		s := NewStudentResponse(e.Student)
		resp.Student = &s
	}
	if e.Course != nil {
		c := NewCourseResponse(e.Course)
		resp.Course = &c
	}
	return resp
}

func NewEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, NewEnrollmentResponse(e))
	}
	return out
}

// StudentCoursesResponse is a student's transcript: every enrollment plus the GPA.
type StudentCoursesResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	GPA         GPAResponse          `json:"gpa"`
}
