package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/services"
	"github.com/naledi/cmcs/internal/middleware"
)

// HRController handles lecturer and account administration
type HRController struct {
	lecturerService *services.LecturerService
	userService     *services.UserService
	claimService    *services.ClaimService
}

// NewHRController creates a new HRController
func NewHRController(lecturerService *services.LecturerService, userService *services.UserService, claimService *services.ClaimService) *HRController {
	return &HRController{
		lecturerService: lecturerService,
		userService:     userService,
		claimService:    claimService,
	}
}

// GetLecturers lists all lecturers
// @Summary List lecturers
// @Description Lists every registered lecturer
// @Tags hr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.LecturerResponse} "Lecturers retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - HR role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/lecturers [get]
func (c *HRController) GetLecturers(ctx *gin.Context) {
	lecturers, err := c.lecturerService.GetAllLecturers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.LecturerResponse, 0, len(lecturers))
	for _, lecturer := range lecturers {
		items = append(items, dto.ToLecturerResponse(lecturer))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// CreateLecturer registers a new lecturer
// @Summary Register a lecturer
// @Description Registers a lecturer with a unique email and hourly rate
// @Tags hr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLecturerRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=dto.LecturerResponse} "Lecturer registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lecturer data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/lecturers [post]
func (c *HRController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lecturer data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lecturer, err := c.lecturerService.CreateLecturer(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToLecturerResponse(lecturer)))
}

// GetDashboard returns the HR dashboard counters
// @Summary HR dashboard
// @Description Aggregates lecturer and claim counters and the processed payout total
// @Tags hr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - HR role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/dashboard [get]
func (c *HRController) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.claimService.GetDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// GetUsers lists all accounts
// @Summary List accounts
// @Description Lists every account
// @Tags hr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Accounts retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - HR role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/users [get]
func (c *HRController) GetUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.ToUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// CreateUser registers a new account
// @Summary Create an account
// @Description Creates an account with a role in the approval chain
// @Tags hr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid account data"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/users [post]
func (c *HRController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.CreateUser(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToUserResponse(user)))
}

// UpdateUser updates an account
// @Summary Update an account
// @Description Updates an account's name, email and role
// @Tags hr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Account information"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Account updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid account data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/users/{id} [put]
func (c *HRController) UpdateUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateUser(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToUserResponse(user)))
}

// DeleteUser removes an account
// @Summary Delete an account
// @Description Removes an account
// @Tags hr
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Account deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/users/{id} [delete]
func (c *HRController) DeleteUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": id}))
}

// ResetPassword resets an account's password
// @Summary Reset an account password
// @Description Replaces the account's password, generating a temporary one when no password is provided
// @Tags hr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.ResetPasswordRequest false "New password"
// @Success 200 {object} dto.APIResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid password"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hr/users/{id}/reset-password [post]
func (c *HRController) ResetPassword(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	var req dto.ResetPasswordRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid password data").
				WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	temporary, err := c.userService.ResetPassword(ctx, id, req.NewPassword)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	payload := gin.H{"reset": id}
	if temporary != "" {
		payload["temporaryPassword"] = temporary
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
}

func userID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID").
			WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
