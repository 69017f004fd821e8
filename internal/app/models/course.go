package models

import "time"

// Course is a catalog entry from the 'courses' table.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	CourseCode  string  `json:"courseCode" db:"course_code" example:"CS101"`
	CourseName  string  `json:"courseName" db:"course_name" example:"Introduction to Programming"`
	Description *string `json:"description,omitempty" db:"description"`
	// Credits is 1..10 or nil.
	Credits    *int      `json:"credits,omitempty" db:"credits" example:"3"`
	Department *string   `json:"department,omitempty" db:"department" example:"Computer Science"`
	Status     string    `json:"status" db:"status" example:"Active"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
