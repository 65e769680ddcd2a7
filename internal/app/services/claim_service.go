package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/app/workflow"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/filestorage"
	"github.com/naledi/cmcs/internal/pkg/logger"
	"github.com/naledi/cmcs/internal/pkg/validation"
)

// MaxDocumentSize is the upper bound for a single supporting document.
const MaxDocumentSize = 5 * 1024 * 1024

// allowedDocumentExtensions lists the accepted upload file types.
var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".jpg":  true,
	".png":  true,
}

// ClaimService handles claim submission and the approval workflow
type ClaimService struct {
	claimRepo    repositories.IClaimRepository
	lecturerRepo repositories.ILecturerRepository
	userRepo     repositories.IUserRepository
	storage      filestorage.FileStorage
}

// NewClaimService creates a new claim service instance
func NewClaimService(
	claimRepo repositories.IClaimRepository,
	lecturerRepo repositories.ILecturerRepository,
	userRepo repositories.IUserRepository,
	storage filestorage.FileStorage,
) *ClaimService {
	return &ClaimService{
		claimRepo:    claimRepo,
		lecturerRepo: lecturerRepo,
		userRepo:     userRepo,
		storage:      storage,
	}
}

// CreateDraft opens an empty draft claim for a lecturer.
func (s *ClaimService) CreateDraft(ctx context.Context, req dto.CreateDraftRequest) (*models.Claim, error) {
	if !validation.IsValidMonth(req.Month) {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "month must be in YYYY-MM format")
	}
	if _, err := s.lecturerRepo.GetByID(ctx, req.LecturerID); err != nil {
		return nil, err
	}

	claim := &models.Claim{
		LecturerID: req.LecturerID,
		Month:      req.Month,
		Status:     models.StatusDraft,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	logger.Info().Int64("claim_id", claim.ID).Int64("lecturer_id", claim.LecturerID).Msg("Draft claim created")
	return claim, nil
}

// SubmitClaim validates and persists a claim submission. Supporting files
// that fail the intake checks are skipped and reported, never fatal. When
// the request names a draft, that draft is finalized instead of creating a
// new claim.
func (s *ClaimService) SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest, files []*multipart.FileHeader) (*models.Claim, []dto.SkippedFile, error) {
	if !validation.IsValidMonth(req.Month) {
		return nil, nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "month must be in YYYY-MM format")
	}
	if _, err := s.lecturerRepo.GetByID(ctx, req.LecturerID); err != nil {
		return nil, nil, err
	}

	claim := models.Claim{
		LecturerID: req.LecturerID,
		Month:      req.Month,
	}
	for _, line := range req.Lines {
		claim.Lines = append(claim.Lines, models.ClaimLine{
			Description: line.Description,
			HoursWorked: line.HoursWorked,
			RatePerHour: line.RatePerHour,
		})
	}

	prepared, err := workflow.PrepareSubmission(claim, time.Now())
	if err != nil {
		return nil, nil, err
	}

	documents, skipped := s.intakeDocuments(files)

	if req.DraftID != nil {
		prepared.ID = *req.DraftID
		draft, err := s.claimRepo.GetByID(ctx, prepared.ID)
		if err != nil {
			s.discardDocuments(documents)
			return nil, nil, err
		}
		if draft.LecturerID != req.LecturerID {
			s.discardDocuments(documents)
			return nil, nil, apperrors.NewForbiddenError("draft belongs to another lecturer")
		}
		if err := s.claimRepo.SubmitDraft(ctx, &prepared); err != nil {
			s.discardDocuments(documents)
			return nil, nil, err
		}
		if len(documents) > 0 {
			if err := s.claimRepo.AddDocuments(ctx, prepared.ID, documents); err != nil {
				s.discardDocuments(documents)
				return nil, nil, err
			}
		}
		prepared.Documents = append(prepared.Documents, documents...)
	} else {
		prepared.Documents = documents
		if err := s.claimRepo.Create(ctx, &prepared); err != nil {
			s.discardDocuments(documents)
			return nil, nil, err
		}
	}

	logger.Info().
		Int64("claim_id", prepared.ID).
		Int64("lecturer_id", prepared.LecturerID).
		Str("month", prepared.Month).
		Str("total_hours", prepared.TotalHours.String()).
		Int("skipped_files", len(skipped)).
		Msg("Claim submitted")

	return &prepared, skipped, nil
}

// GetClaim retrieves one claim with its lines and documents.
func (s *ClaimService) GetClaim(ctx context.Context, id int64) (*models.Claim, error) {
	return s.claimRepo.GetByID(ctx, id)
}

// GetClaimsForLecturer lists a lecturer's claims, newest first.
func (s *ClaimService) GetClaimsForLecturer(ctx context.Context, lecturerID int64, page, pageSize int) ([]models.Claim, int64, error) {
	return s.claimRepo.GetAllByLecturer(ctx, lecturerID, page, pageSize)
}

// GetPendingClaims lists claims awaiting review, oldest submission first.
func (s *ClaimService) GetPendingClaims(ctx context.Context, page, pageSize int) ([]models.Claim, int64, error) {
	pending := []models.ClaimStatus{models.StatusSubmitted, models.StatusVerified, models.StatusApproved}
	return s.claimRepo.GetAllByStatus(ctx, pending, page, pageSize)
}

// TransitionClaim applies an approval or rejection by the acting user.
func (s *ClaimService) TransitionClaim(ctx context.Context, claimID, actorID int64, action workflow.Action, comment string) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	expected := claim.Status
	updated, err := workflow.Transition(*claim, *actor, action, comment, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.claimRepo.UpdateStatus(ctx, &updated, expected); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("claim_id", updated.ID).
		Int64("actor_id", actorID).
		Str("action", string(action)).
		Str("status", string(updated.Status)).
		Msg("Claim transitioned")

	return &updated, nil
}

// AddDocuments appends supporting documents to a claim that is still in
// flight. Files failing the intake checks are skipped and reported.
func (s *ClaimService) AddDocuments(ctx context.Context, claimID int64, files []*multipart.FileHeader) ([]models.SupportingDocument, []dto.SkippedFile, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, nil, err
	}
	if claim.Status.Terminal() {
		return nil, nil, apperrors.ErrInvalidTransition
	}

	documents, skipped := s.intakeDocuments(files)
	if len(documents) > 0 {
		if err := s.claimRepo.AddDocuments(ctx, claimID, documents); err != nil {
			s.discardDocuments(documents)
			return nil, nil, err
		}
	}

	return documents, skipped, nil
}

// GetDashboard aggregates the HR dashboard counters.
func (s *ClaimService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := s.claimRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	lecturers, err := s.lecturerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalLecturers:  lecturers,
		TotalClaims:     stats.TotalClaims,
		PendingClaims:   stats.PendingClaims,
		ProcessedClaims: stats.ProcessedClaims,
		RejectedClaims:  stats.RejectedClaims,
		ProcessedTotal:  stats.ProcessedTotal,
	}, nil
}

// intakeDocuments stores the acceptable files and reports the rest as
// skipped. A storage failure for one file never aborts the batch.
func (s *ClaimService) intakeDocuments(files []*multipart.FileHeader) ([]models.SupportingDocument, []dto.SkippedFile) {
	var documents []models.SupportingDocument
	var skipped []dto.SkippedFile

	for _, file := range files {
		if reason := checkDocument(file); reason != "" {
			skipped = append(skipped, dto.SkippedFile{FileName: file.Filename, Reason: reason})
			continue
		}

		path, err := s.storage.SaveFile(file)
		if err != nil {
			logger.Warn().Err(err).Str("file", file.Filename).Msg("Failed to store supporting document")
			skipped = append(skipped, dto.SkippedFile{FileName: file.Filename, Reason: "could not store file"})
			continue
		}

		documents = append(documents, models.SupportingDocument{
			FileName:    file.Filename,
			FilePath:    path,
			FileSize:    file.Size,
			ContentType: file.Header.Get("Content-Type"),
		})
	}

	return documents, skipped
}

// discardDocuments removes stored files whose claim never made it to the
// database, so a failed submission leaves no orphaned uploads.
func (s *ClaimService) discardDocuments(documents []models.SupportingDocument) {
	for _, doc := range documents {
		if err := s.storage.DeleteFile(doc.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", doc.FilePath).Msg("Failed to remove orphaned document")
		}
	}
}

// checkDocument returns a skip reason, or "" when the file is acceptable.
func checkDocument(file *multipart.FileHeader) string {
	if file.Size == 0 {
		return "empty file"
	}
	if file.Size > MaxDocumentSize {
		return fmt.Sprintf("file exceeds the %d MiB limit", MaxDocumentSize/(1024*1024))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExtensions[ext] {
		return "file type not allowed"
	}
	return ""
}
