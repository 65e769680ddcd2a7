package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/services"
	"github.com/naledi/cmcs/internal/app/workflow"
	"github.com/naledi/cmcs/internal/middleware"
	"github.com/naledi/cmcs/internal/pkg/helpers"
)

// ClaimController handles claim submission and review operations
type ClaimController struct {
	claimService *services.ClaimService
}

// NewClaimController creates a new ClaimController
func NewClaimController(claimService *services.ClaimService) *ClaimController {
	return &ClaimController{claimService: claimService}
}

// SubmitClaim handles a claim submission with optional supporting documents
// @Summary Submit a monthly claim
// @Description Validates the claim lines, stores acceptable supporting documents and submits the claim. Send either a JSON body, or multipart form data with a "claim" JSON field and "documents" files.
// @Tags claims
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitClaimRequest true "Claim submission"
// @Success 201 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid claim data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims [post]
func (c *ClaimController) SubmitClaim(ctx *gin.Context) {
	req, files, ok := bindClaimSubmission(ctx)
	if !ok {
		return
	}

	claim, skipped, err := c.claimService.SubmitClaim(ctx, req, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ToClaimResponse(claim)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{
		"claim":   resp,
		"skipped": skipped,
	}))
}

// bindClaimSubmission reads a submission from either a JSON body or a
// multipart form carrying a "claim" JSON field plus "documents" files.
func bindClaimSubmission(ctx *gin.Context) (dto.SubmitClaimRequest, []*multipart.FileHeader, bool) {
	var req dto.SubmitClaimRequest

	contentType := ctx.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := ctx.MultipartForm()
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").
				WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return req, nil, false
		}

		payload := ctx.PostForm("claim")
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid claim data").
				WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return req, nil, false
		}

		return req, form.File["documents"], true
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid claim data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return req, nil, false
	}

	return req, nil, true
}

// CreateDraft opens an empty draft claim
// @Summary Create a draft claim
// @Description Opens an empty draft claim for a lecturer and month
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDraftRequest true "Draft claim"
// @Success 201 {object} dto.APIResponse{data=dto.ClaimResponse} "Draft created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/draft [post]
func (c *ClaimController) CreateDraft(ctx *gin.Context) {
	var req dto.CreateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid draft data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	claim, err := c.claimService.CreateDraft(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToClaimResponse(claim)))
}

// GetMyClaims lists a lecturer's claims
// @Summary List a lecturer's claims
// @Description Lists the claims of a lecturer, newest submission first
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param lecturerId query int true "Lecturer ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Claims retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lecturer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/my [get]
func (c *ClaimController) GetMyClaims(ctx *gin.Context) {
	lecturerID, err := strconv.ParseInt(ctx.Query("lecturerId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lecturer ID").
			WithDetails("lecturerId must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	claims, total, err := c.claimService.GetClaimsForLecturer(ctx, lecturerID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, dto.ToClaimResponse(&claims[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(items, helpers.NewPaginationInfo(total, page, size)),
	))
}

// GetPendingClaims lists claims awaiting review
// @Summary List pending claims
// @Description Lists claims awaiting review, oldest submission first
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Claims retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/pending [get]
func (c *ClaimController) GetPendingClaims(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	claims, total, err := c.claimService.GetPendingClaims(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, dto.ToClaimResponse(&claims[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(items, helpers.NewPaginationInfo(total, page, size)),
	))
}

// GetClaim retrieves one claim
// @Summary Get claim by ID
// @Description Retrieves a claim with its lines and supporting documents
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid claim ID"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/{id} [get]
func (c *ClaimController) GetClaim(ctx *gin.Context) {
	id, ok := claimID(ctx)
	if !ok {
		return
	}

	claim, err := c.claimService.GetClaim(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToClaimResponse(claim)))
}

// ApproveClaim advances a claim one step in the approval chain
// @Summary Approve a claim
// @Description Moves the claim to the next status when the acting user's role matches the claim's current status
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim approved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid claim ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - role may not act on claims"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 409 {object} dto.ErrorResponse "Claim is not in a state that allows this action"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/{id}/approve [post]
func (c *ClaimController) ApproveClaim(ctx *gin.Context) {
	c.transition(ctx, workflow.ActionApprove, "")
}

// RejectClaim rejects a claim with a mandatory comment
// @Summary Reject a claim
// @Description Rejects a pending claim; the comment is mandatory
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param request body dto.RejectClaimRequest true "Rejection comment"
// @Success 200 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim rejected successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing rejection comment"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - role may not act on claims"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 409 {object} dto.ErrorResponse "Claim is not in a state that allows this action"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/{id}/reject [post]
func (c *ClaimController) RejectClaim(ctx *gin.Context) {
	var req dto.RejectClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rejection comment is required").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	c.transition(ctx, workflow.ActionReject, req.Comment)
}

func (c *ClaimController) transition(ctx *gin.Context, action workflow.Action, comment string) {
	id, ok := claimID(ctx)
	if !ok {
		return
	}

	actorID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	claim, err := c.claimService.TransitionClaim(ctx, id, actorID, action, comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToClaimResponse(claim)))
}

// AddDocuments appends supporting documents to an existing claim
// @Summary Add supporting documents
// @Description Stores acceptable files against the claim; unacceptable files are skipped and reported
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param documents formData file true "Supporting documents"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResultResponse} "Documents processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid claim ID or form"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 409 {object} dto.ErrorResponse "Claim already settled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/{id}/documents [post]
func (c *ClaimController) AddDocuments(ctx *gin.Context) {
	id, ok := claimID(ctx)
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	saved, skipped, err := c.claimService.AddDocuments(ctx, id, form.File["documents"])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := dto.UploadResultResponse{Skipped: skipped}
	for _, doc := range saved {
		result.Saved = append(result.Saved, dto.ToDocumentResponse(doc))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

func claimID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid claim ID").
			WithDetails("Claim ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
