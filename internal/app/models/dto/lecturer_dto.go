package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/naledi/cmcs/internal/app/models"
)

// LecturerResponse is the public representation of a lecturer.
type LecturerResponse struct {
	ID         int64           `json:"id" example:"1"`
	FullName   string          `json:"fullName" example:"Dr. Tumi Nkosi"`
	Email      string          `json:"email" example:"tumi@cmcs.local"`
	HourlyRate decimal.Decimal `json:"hourlyRate" example:"500.00"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CreateLecturerRequest carries the fields for registering a lecturer.
type CreateLecturerRequest struct {
	FullName   string          `json:"fullName" binding:"required" example:"Dr. Tumi Nkosi"`
	Email      string          `json:"email" binding:"required,email" example:"tumi@cmcs.local"`
	HourlyRate decimal.Decimal `json:"hourlyRate" binding:"required" example:"500.00"`
}

// ToLecturerResponse maps a lecturer model to its response DTO.
func ToLecturerResponse(lecturer *models.Lecturer) LecturerResponse {
	return LecturerResponse{
		ID:         lecturer.ID,
		FullName:   lecturer.FullName,
		Email:      lecturer.Email,
		HourlyRate: lecturer.HourlyRate,
		CreatedAt:  lecturer.CreatedAt,
	}
}
