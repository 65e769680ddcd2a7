package models

import "time"

// User defines an approver/administrator account based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	FullName  string    `json:"fullName" db:"full_name" example:"Kholo Nkosi"`
	Email     string    `json:"email" db:"email" example:"kholo@college.ac.za"` // Unique across users and lecturers
	Username  string    `json:"username" db:"username" example:"kholo.hr"`
	Password  string    `json:"-" db:"password"` // Bcrypt hash, excluded from JSON
	Role      RoleType  `json:"role" db:"role" example:"HR"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
