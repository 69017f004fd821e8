package models

import "time"

// Enrollment is one row of the 'student_courses' ledger.
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	Grade          *string   `json:"grade,omitempty" db:"grade" example:"B+"`
	Status         string    `json:"status" db:"status" example:"Enrolled"`

	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
