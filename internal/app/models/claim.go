package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim defines one monthly hour claim based on the 'claims' table.
// Totals are derived from the lines and recomputed on every submission.
type Claim struct {
	ID               int64           `json:"id" db:"id"`
	LecturerID       int64           `json:"lecturerId" db:"lecturer_id"`
	Month            string          `json:"month" db:"month" example:"2025-09"` // Month the claim covers, YYYY-MM
	Status           ClaimStatus     `json:"status" db:"status" example:"SUBMITTED"`
	TotalHours       decimal.Decimal `json:"totalHours" db:"total_hours"`
	TotalAmount      decimal.Decimal `json:"totalAmount" db:"total_amount"`
	SubmittedAt      *time.Time      `json:"submittedAt,omitempty" db:"submitted_at"` // Set on submission, nil while draft
	ApprovedBy       *int64          `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty" db:"approved_at"`
	RejectedBy       *int64          `json:"rejectedBy,omitempty" db:"rejected_by"`
	RejectedAt       *time.Time      `json:"rejectedAt,omitempty" db:"rejected_at"`
	RejectionComment *string         `json:"rejectionComment,omitempty" db:"rejection_comment"`

	Lines     []ClaimLine          `json:"lines,omitempty"`     // Relation, no db tag
	Documents []SupportingDocument `json:"documents,omitempty"` // Relation, no db tag
	Lecturer  *Lecturer            `json:"lecturer,omitempty"`  // Relation, no db tag
}

// ClaimLine defines one itemized work entry within a claim.
// Lines are created with the claim and immutable after submission.
type ClaimLine struct {
	ID          int64           `json:"id" db:"id"`
	ClaimID     int64           `json:"claimId" db:"claim_id"`
	Description string          `json:"description" db:"description" example:"Lecture: Module C108"`
	HoursWorked decimal.Decimal `json:"hoursWorked" db:"hours_worked"`
	RatePerHour decimal.Decimal `json:"ratePerHour" db:"rate_per_hour"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"` // Derived: hours x rate
}
