package dto

import (
	"time"

	"github.com/yigit/sims/internal/app/models"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateStudentRequest creates the student together with its login.
type CreateStudentRequest struct {
	Username        string   `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Password        string   `json:"password" binding:"required,min=6"`
	StudentCode     string   `json:"studentCode" binding:"required,max=20" example:"ST2024001"`
	StudentID       string   `json:"studentId" binding:"omitempty,max=20"`
	FullName        string   `json:"fullName" binding:"required,max=100" example:"Jane Doe"`
	DateOfBirth     *string  `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2004-05-17"`
	Gender          *string  `json:"gender,omitempty" binding:"omitempty,max=10"`
	Address         *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Phone           *string  `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email           *string  `json:"email,omitempty" binding:"omitempty,email"`
	AcademicProgram *string  `json:"academicProgram,omitempty" binding:"omitempty,max=100"`
	Year            *int     `json:"year,omitempty" binding:"omitempty,min=1,max=10"`
	GPA             *float64 `json:"gpa,omitempty" binding:"omitempty,min=0,max=4"`
	EnrollmentDate  *string  `json:"enrollmentDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Status          string   `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateStudentRequest struct {
	StudentCode     string   `json:"studentCode" binding:"required,max=20"`
	StudentID       string   `json:"studentId" binding:"omitempty,max=20"`
	FullName        string   `json:"fullName" binding:"required,max=100"`
	DateOfBirth     *string  `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Gender          *string  `json:"gender,omitempty" binding:"omitempty,max=10"`
	Address         *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Phone           *string  `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email           *string  `json:"email,omitempty" binding:"omitempty,email"`
	AcademicProgram *string  `json:"academicProgram,omitempty" binding:"omitempty,max=100"`
	Year            *int     `json:"year,omitempty" binding:"omitempty,min=1,max=10"`
	GPA             *float64 `json:"gpa,omitempty" binding:"omitempty,min=0,max=4"`
	EnrollmentDate  *string  `json:"enrollmentDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Status          string   `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateMyStudentRequest is what a student may change on their own record.
type UpdateMyStudentRequest struct {
	DateOfBirth *string `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender,omitempty" binding:"omitempty,max=10"`
	Address     *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=20"`
}

type StudentResponse struct {
	ID              int64         `json:"id" example:"1"`
	StudentCode     string        `json:"studentCode" example:"ST2024001"`
	StudentID       string        `json:"studentId,omitempty"`
	FullName        string        `json:"fullName" example:"Jane Doe"`
	DateOfBirth     *string       `json:"dateOfBirth,omitempty" example:"2004-05-17"`
	Gender          *string       `json:"gender,omitempty"`
	Address         *string       `json:"address,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	Email           *string       `json:"email,omitempty"`
	AcademicProgram *string       `json:"academicProgram,omitempty"`
	Year            *int          `json:"year,omitempty"`
	GPA             *float64      `json:"gpa,omitempty"`
	UserID          int64         `json:"userId"`
	EnrollmentDate  *string       `json:"enrollmentDate,omitempty"`
	Status          string        `json:"status" example:"Active"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	User            *UserResponse `json:"user,omitempty"`
}

// GPAResponse reports a computed GPA. HasGrades is false, and GPA omitted, when
// the student has no graded course with credits.
type GPAResponse struct {
	StudentID int64    `json:"studentId"`
	GPA       *float64 `json:"gpa,omitempty" example:"3.03"`
	HasGrades bool     `json:"hasGrades"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate reads an optional DateLayout value.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:              s.ID,
		StudentCode:     s.StudentCode,
		StudentID:       s.StudentID,
		FullName:        s.FullName,
		DateOfBirth:     formatDate(s.DateOfBirth),
		Gender:          s.Gender,
		Address:         s.Address,
		Phone:           s.Phone,
		Email:           s.Email,
		AcademicProgram: s.AcademicProgram,
		Year:            s.Year,
		GPA:             s.GPA,
		UserID:          s.UserID,
		EnrollmentDate:  formatDate(s.EnrollmentDate),
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.User != nil {
		u := NewUserResponse(s.User)
		resp.User = &u
	}
	return resp
}

func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
