package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/dberrors"
)

// ILecturerRepository defines the interface for lecturer database operations
type ILecturerRepository interface {
	Create(ctx context.Context, lecturer *models.Lecturer) error
	GetByID(ctx context.Context, id int64) (*models.Lecturer, error)
	GetAll(ctx context.Context) ([]*models.Lecturer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// LecturerRepository handles database operations for lecturers
type LecturerRepository struct {
	db *pgxpool.Pool
}

// NewLecturerRepository creates a new LecturerRepository
func NewLecturerRepository(db *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// Create creates a new lecturer
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	query := `
		INSERT INTO lecturers (full_name, email, hourly_rate)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		lecturer.FullName,
		lecturer.Email,
		lecturer.HourlyRate,
	).Scan(&lecturer.ID, &lecturer.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lecturers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating lecturer: %w", err)
	}

	return nil
}

// GetByID retrieves a lecturer by ID
func (r *LecturerRepository) GetByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	query := `
		SELECT id, full_name, email, hourly_rate, created_at
		FROM lecturers
		WHERE id = $1
	`

	var lecturer models.Lecturer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lecturer.ID,
		&lecturer.FullName,
		&lecturer.Email,
		&lecturer.HourlyRate,
		&lecturer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}

	return &lecturer, nil
}

// GetAll retrieves all lecturers ordered by name
func (r *LecturerRepository) GetAll(ctx context.Context) ([]*models.Lecturer, error) {
	query := `
		SELECT id, full_name, email, hourly_rate, created_at
		FROM lecturers
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturers: %w", err)
	}
	defer rows.Close()

	var lecturers []*models.Lecturer
	for rows.Next() {
		var lecturer models.Lecturer
		if err := rows.Scan(
			&lecturer.ID,
			&lecturer.FullName,
			&lecturer.Email,
			&lecturer.HourlyRate,
			&lecturer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning lecturer: %w", err)
		}
		lecturers = append(lecturers, &lecturer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lecturers, nil
}

// EmailExists checks if an email is already taken by any lecturer or account
func (r *LecturerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(SELECT 1 FROM lecturers WHERE email = $1)
		    OR EXISTS(SELECT 1 FROM users WHERE email = $1)
	`

	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// Count returns the number of registered lecturers
func (r *LecturerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lecturers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting lecturers: %w", err)
	}

	return count, nil
}
