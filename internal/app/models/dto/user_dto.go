package dto

import (
	"time"

	"github.com/naledi/cmcs/internal/app/models"
)

// UserResponse is the public representation of an account.
type UserResponse struct {
	ID        int64           `json:"id" example:"1"`
	FullName  string          `json:"fullName" example:"Kholofelo Mashaba"`
	Email     string          `json:"email" example:"kholo@cmcs.local"`
	Username  string          `json:"username" example:"kholo.hr"`
	Role      models.RoleType `json:"role" example:"HR"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateUserRequest carries the fields for creating an account.
type CreateUserRequest struct {
	FullName string          `json:"fullName" binding:"required" example:"Siyanda Dlamini"`
	Email    string          `json:"email" binding:"required,email" example:"siya@cmcs.local"`
	Username string          `json:"username" binding:"required,min=3,max=50" example:"siya.coord"`
	Password string          `json:"password" binding:"required,min=8" example:"Password@1"`
	Role     models.RoleType `json:"role" binding:"required" example:"PROGRAMME_COORDINATOR"`
}

// UpdateUserRequest carries the mutable fields of an account.
type UpdateUserRequest struct {
	FullName string          `json:"fullName" binding:"required" example:"Siyanda Dlamini"`
	Email    string          `json:"email" binding:"required,email" example:"siya@cmcs.local"`
	Role     models.RoleType `json:"role" binding:"required" example:"ACADEMIC_MANAGER"`
}

// ResetPasswordRequest carries the replacement password for an account.
// An empty body asks the server to generate a temporary password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"omitempty,min=8" example:"Password@2"`
}

// ToUserResponse maps a user model to its response DTO.
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
