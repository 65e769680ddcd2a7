package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/naledi/cmcs/internal/app/models"
)

// ClaimLineRequest is a single line item of a claim submission.
type ClaimLineRequest struct {
	Description string          `json:"description" binding:"required" example:"PROG6212 tutorials, week 1"`
	HoursWorked decimal.Decimal `json:"hoursWorked" binding:"required" example:"8"`
	RatePerHour decimal.Decimal `json:"ratePerHour" binding:"required" example:"500.00"`
}

// SubmitClaimRequest carries a full claim submission. When DraftID is set
// the submission finalizes that draft instead of creating a new claim.
type SubmitClaimRequest struct {
	LecturerID int64              `json:"lecturerId" binding:"required" example:"1"`
	Month      string             `json:"month" binding:"required" example:"2025-03"`
	DraftID    *int64             `json:"draftId,omitempty" example:"7"`
	Lines      []ClaimLineRequest `json:"lines" binding:"required"`
}

// CreateDraftRequest carries the fields for opening an empty draft claim.
type CreateDraftRequest struct {
	LecturerID int64  `json:"lecturerId" binding:"required" example:"1"`
	Month      string `json:"month" binding:"required" example:"2025-03"`
}

// RejectClaimRequest carries the mandatory comment for a rejection.
type RejectClaimRequest struct {
	Comment string `json:"comment" binding:"required" example:"Hours for week 2 do not match the timetable"`
}

// ClaimLineResponse is the public representation of a claim line.
type ClaimLineResponse struct {
	ID          int64           `json:"id" example:"1"`
	Description string          `json:"description" example:"PROG6212 tutorials, week 1"`
	HoursWorked decimal.Decimal `json:"hoursWorked" example:"8"`
	RatePerHour decimal.Decimal `json:"ratePerHour" example:"500.00"`
	Subtotal    decimal.Decimal `json:"subtotal" example:"4000.00"`
}

// DocumentResponse is the public representation of a supporting document.
type DocumentResponse struct {
	ID          int64     `json:"id" example:"1"`
	FileName    string    `json:"fileName" example:"timesheet-march.pdf"`
	FileURL     string    `json:"fileUrl" example:"/uploads/9f2d1c.pdf"`
	FileSize    int64     `json:"fileSize" example:"24576"`
	ContentType string    `json:"contentType" example:"application/pdf"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ClaimResponse is the public representation of a claim.
type ClaimResponse struct {
	ID               int64               `json:"id" example:"1"`
	LecturerID       int64               `json:"lecturerId" example:"1"`
	LecturerName     string              `json:"lecturerName,omitempty" example:"Dr. Tumi Nkosi"`
	Month            string              `json:"month" example:"2025-03"`
	Status           models.ClaimStatus  `json:"status" example:"SUBMITTED"`
	TotalHours       decimal.Decimal     `json:"totalHours" example:"12"`
	TotalAmount      decimal.Decimal     `json:"totalAmount" example:"6000.00"`
	SubmittedAt      *time.Time          `json:"submittedAt,omitempty"`
	ApprovedBy       *int64              `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time          `json:"approvedAt,omitempty"`
	RejectedBy       *int64              `json:"rejectedBy,omitempty"`
	RejectedAt       *time.Time          `json:"rejectedAt,omitempty"`
	RejectionComment *string             `json:"rejectionComment,omitempty"`
	Lines            []ClaimLineResponse `json:"lines,omitempty"`
	Documents        []DocumentResponse  `json:"documents,omitempty"`
}

// UploadResultResponse reports the outcome of a document batch upload.
// Files that fail the size or type checks are skipped, not fatal.
type UploadResultResponse struct {
	Saved   []DocumentResponse `json:"saved"`
	Skipped []SkippedFile      `json:"skipped"`
}

// SkippedFile names an upload that was not stored and why.
type SkippedFile struct {
	FileName string `json:"fileName" example:"notes.exe"`
	Reason   string `json:"reason" example:"file type not allowed"`
}

// DashboardResponse carries the HR dashboard counters.
type DashboardResponse struct {
	TotalLecturers  int64           `json:"totalLecturers" example:"2"`
	TotalClaims     int64           `json:"totalClaims" example:"14"`
	PendingClaims   int64           `json:"pendingClaims" example:"3"`
	ProcessedClaims int64           `json:"processedClaims" example:"9"`
	RejectedClaims  int64           `json:"rejectedClaims" example:"2"`
	ProcessedTotal  decimal.Decimal `json:"processedTotal" example:"84500.00"`
}

// ToClaimLineResponse maps a claim line model to its response DTO.
func ToClaimLineResponse(line models.ClaimLine) ClaimLineResponse {
	return ClaimLineResponse{
		ID:          line.ID,
		Description: line.Description,
		HoursWorked: line.HoursWorked,
		RatePerHour: line.RatePerHour,
		Subtotal:    line.Subtotal,
	}
}

// ToDocumentResponse maps a supporting document model to its response DTO.
func ToDocumentResponse(doc models.SupportingDocument) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		FileName:    doc.FileName,
		FileURL:     "/" + doc.FilePath,
		FileSize:    doc.FileSize,
		ContentType: doc.ContentType,
		UploadedAt:  doc.UploadedAt,
	}
}

// ToClaimResponse maps a claim model to its response DTO.
func ToClaimResponse(claim *models.Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:               claim.ID,
		LecturerID:       claim.LecturerID,
		Month:            claim.Month,
		Status:           claim.Status,
		TotalHours:       claim.TotalHours,
		TotalAmount:      claim.TotalAmount,
		SubmittedAt:      claim.SubmittedAt,
		ApprovedBy:       claim.ApprovedBy,
		ApprovedAt:       claim.ApprovedAt,
		RejectedBy:       claim.RejectedBy,
		RejectedAt:       claim.RejectedAt,
		RejectionComment: claim.RejectionComment,
	}
	if claim.Lecturer != nil {
		resp.LecturerName = claim.Lecturer.FullName
	}
	for _, line := range claim.Lines {
		resp.Lines = append(resp.Lines, ToClaimLineResponse(line))
	}
	for _, doc := range claim.Documents {
		resp.Documents = append(resp.Documents, ToDocumentResponse(doc))
	}
	return resp
}
