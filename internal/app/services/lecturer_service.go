package services

import (
	"context"
	"strings"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/logger"
	"github.com/naledi/cmcs/internal/pkg/validation"
)

// LecturerService handles lecturer administration
type LecturerService struct {
	lecturerRepo repositories.ILecturerRepository
}

// NewLecturerService creates a new lecturer service instance
func NewLecturerService(lecturerRepo repositories.ILecturerRepository) *LecturerService {
	return &LecturerService{lecturerRepo: lecturerRepo}
}

// CreateLecturer registers a new lecturer with a unique email.
func (s *LecturerService) CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest) (*models.Lecturer, error) {
	name := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "full name is required")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "email format is invalid")
	}
	if !req.HourlyRate.IsPositive() {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "hourly rate must be positive")
	}

	taken, err := s.lecturerRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	lecturer := &models.Lecturer{
		FullName:   name,
		Email:      email,
		HourlyRate: req.HourlyRate,
	}
	if err := s.lecturerRepo.Create(ctx, lecturer); err != nil {
		return nil, err
	}

	logger.Info().Int64("lecturer_id", lecturer.ID).Str("email", lecturer.Email).Msg("Lecturer registered")
	return lecturer, nil
}

// GetLecturer retrieves a lecturer by ID.
func (s *LecturerService) GetLecturer(ctx context.Context, id int64) (*models.Lecturer, error) {
	return s.lecturerRepo.GetByID(ctx, id)
}

// GetAllLecturers lists every registered lecturer.
func (s *LecturerService) GetAllLecturers(ctx context.Context) ([]*models.Lecturer, error) {
	return s.lecturerRepo.GetAll(ctx)
}
