package models

import "time"

// SupportingDocument defines a stored upload attached to a claim.
// The original file name is metadata only; FilePath is the stored reference.
type SupportingDocument struct {
	ID          int64     `json:"id" db:"id"`
	ClaimID     int64     `json:"claimId" db:"claim_id"`
	FileName    string    `json:"fileName" db:"file_name" example:"attendance_Sept2025.pdf"`
	FilePath    string    `json:"filePath" db:"file_path" example:"uploads/8f14e45f.pdf"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	ContentType string    `json:"contentType" db:"content_type" example:"application/pdf"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}
