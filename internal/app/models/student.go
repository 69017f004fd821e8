package models

import "time"

// Student is a profile from the 'students' table, owned by exactly one User.
type Student struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	StudentCode string  `json:"studentCode" db:"student_code" example:"ST2024001"`
	// StudentID is the legacy secondary code; empty when absent.
	StudentID       string     `json:"studentId,omitempty" db:"student_id" example:"S-00042"`
	FullName        string     `json:"fullName" db:"full_name" example:"Jane Doe"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender          *string    `json:"gender,omitempty" db:"gender"`
	Address         *string    `json:"address,omitempty" db:"address"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	Email           *string    `json:"email,omitempty" db:"email"`
	AcademicProgram *string    `json:"academicProgram,omitempty" db:"academic_program"`
	Year            *int       `json:"year,omitempty" db:"year"`
	GPA             *float64   `json:"gpa,omitempty" db:"gpa"`
	UserID          int64      `json:"userId" db:"user_id"`
	EnrollmentDate  *time.Time `json:"enrollmentDate,omitempty" db:"enrollment_date"`
	Status          string     `json:"status" db:"status" example:"Active"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"`
}

// EmailValue returns the profile email or "" when it is unset.
func (s *Student) EmailValue() string {
	if s.Email == nil {
		return ""
	}
	return *s.Email
}
