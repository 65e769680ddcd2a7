package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lecturer defines the lecturer model based on the 'lecturers' table
type Lecturer struct {
	ID         int64           `json:"id" db:"id" example:"1"`                             // Unique identifier for the lecturer
	FullName   string          `json:"fullName" db:"full_name" example:"Dr. Tumi N."`      // Lecturer's full name
	Email      string          `json:"email" db:"email" example:"tumi@college.ac.za"`      // Email, unique across lecturers and users
	HourlyRate decimal.Decimal `json:"hourlyRate" db:"hourly_rate" example:"500.00"`       // Contracted hourly rate
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`                          // Timestamp when the lecturer was added
}
