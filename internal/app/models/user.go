package models

import "time"

// User is a login account from the 'users' table.
type User struct {
	ID       int64  `json:"id" db:"id" example:"1"`
	Username string `json:"username" db:"username" example:"jdoe"`
	// Password is stored exactly as handed to the directory.
	Password  string    `json:"-" db:"password"`
	Email     string    `json:"email,omitempty" db:"email" example:"jdoe@school.edu"`
	Phone     *string   `json:"phone,omitempty" db:"phone" example:"+1 555 0100"`
	Role      RoleType  `json:"role" db:"role" example:"Student"`
	Status    string    `json:"status" db:"status" example:"Active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
