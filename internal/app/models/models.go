package models

// RoleType is the role stored on a user account.
type RoleType string

const (
	RoleAdmin   RoleType = "Admin"
	RoleStudent RoleType = "Student"
	// RoleFaculty keeps the stored spelling used by existing accounts.
	RoleFaculty RoleType = "Falculty"
)

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleFaculty:
		return true
	}
	return false
}

// Status values shared by users, students and courses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Enrollment statuses.
const (
	EnrollmentEnrolled  = "Enrolled"
	EnrollmentCompleted = "Completed"
	EnrollmentDropped   = "Dropped"
)
