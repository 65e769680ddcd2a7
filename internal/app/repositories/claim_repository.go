package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/db"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

// ClaimStats aggregates claim counters for the dashboard.
type ClaimStats struct {
	TotalClaims     int64
	PendingClaims   int64
	ProcessedClaims int64
	RejectedClaims  int64
	ProcessedTotal  decimal.Decimal
}

// IClaimRepository defines the interface for claim database operations
type IClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id int64) (*models.Claim, error)
	GetAllByLecturer(ctx context.Context, lecturerID int64, page, pageSize int) ([]models.Claim, int64, error)
	GetAllByStatus(ctx context.Context, statuses []models.ClaimStatus, page, pageSize int) ([]models.Claim, int64, error)
	SubmitDraft(ctx context.Context, claim *models.Claim) error
	UpdateStatus(ctx context.Context, claim *models.Claim, expected models.ClaimStatus) error
	AddDocuments(ctx context.Context, claimID int64, documents []models.SupportingDocument) error
	GetStats(ctx context.Context) (*ClaimStats, error)
}

// ClaimRepository handles database operations for claims
type ClaimRepository struct {
	db *pgxpool.Pool
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create persists a claim together with its lines and documents in one transaction.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO claims (lecturer_id, month, status, total_hours, total_amount, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query,
			claim.LecturerID,
			claim.Month,
			claim.Status,
			claim.TotalHours,
			claim.TotalAmount,
			claim.SubmittedAt,
		).Scan(&claim.ID)
		if err != nil {
			return fmt.Errorf("error creating claim: %w", err)
		}

		if err := insertLines(ctx, tx, claim); err != nil {
			return err
		}

		docQuery := `
			INSERT INTO supporting_documents (claim_id, file_name, file_path, file_size, content_type)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, uploaded_at
		`
		for i := range claim.Documents {
			doc := &claim.Documents[i]
			doc.ClaimID = claim.ID
			err = tx.QueryRow(ctx, docQuery,
				doc.ClaimID,
				doc.FileName,
				doc.FilePath,
				doc.FileSize,
				doc.ContentType,
			).Scan(&doc.ID, &doc.UploadedAt)
			if err != nil {
				return fmt.Errorf("error creating supporting document: %w", err)
			}
		}

		return nil
	})
}

func insertLines(ctx context.Context, tx pgx.Tx, claim *models.Claim) error {
	query := `
		INSERT INTO claim_lines (claim_id, description, hours_worked, rate_per_hour, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for i := range claim.Lines {
		line := &claim.Lines[i]
		line.ClaimID = claim.ID
		err := tx.QueryRow(ctx, query,
			line.ClaimID,
			line.Description,
			line.HoursWorked,
			line.RatePerHour,
			line.Subtotal,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("error creating claim line: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a claim with its lines, documents and lecturer.
func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*models.Claim, error) {
	query := `
		SELECT c.id, c.lecturer_id, c.month, c.status, c.total_hours, c.total_amount,
		       c.submitted_at, c.approved_by, c.approved_at,
		       c.rejected_by, c.rejected_at, c.rejection_comment,
		       l.id, l.full_name, l.email, l.hourly_rate, l.created_at
		FROM claims c
		JOIN lecturers l ON l.id = c.lecturer_id
		WHERE c.id = $1
	`

	var claim models.Claim
	var lecturer models.Lecturer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&claim.ID,
		&claim.LecturerID,
		&claim.Month,
		&claim.Status,
		&claim.TotalHours,
		&claim.TotalAmount,
		&claim.SubmittedAt,
		&claim.ApprovedBy,
		&claim.ApprovedAt,
		&claim.RejectedBy,
		&claim.RejectedAt,
		&claim.RejectionComment,
		&lecturer.ID,
		&lecturer.FullName,
		&lecturer.Email,
		&lecturer.HourlyRate,
		&lecturer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, fmt.Errorf("error retrieving claim: %w", err)
	}
	claim.Lecturer = &lecturer

	if claim.Lines, err = r.getLines(ctx, id); err != nil {
		return nil, err
	}
	if claim.Documents, err = r.getDocuments(ctx, id); err != nil {
		return nil, err
	}

	return &claim, nil
}

func (r *ClaimRepository) getLines(ctx context.Context, claimID int64) ([]models.ClaimLine, error) {
	query := `
		SELECT id, claim_id, description, hours_worked, rate_per_hour, subtotal
		FROM claim_lines
		WHERE claim_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, claimID)
	if err != nil {
		return nil, fmt.Errorf("error listing claim lines: %w", err)
	}
	defer rows.Close()

	var lines []models.ClaimLine
	for rows.Next() {
		var line models.ClaimLine
		if err := rows.Scan(
			&line.ID,
			&line.ClaimID,
			&line.Description,
			&line.HoursWorked,
			&line.RatePerHour,
			&line.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("error scanning claim line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (r *ClaimRepository) getDocuments(ctx context.Context, claimID int64) ([]models.SupportingDocument, error) {
	query := `
		SELECT id, claim_id, file_name, file_path, file_size, content_type, uploaded_at
		FROM supporting_documents
		WHERE claim_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, claimID)
	if err != nil {
		return nil, fmt.Errorf("error listing supporting documents: %w", err)
	}
	defer rows.Close()

	var documents []models.SupportingDocument
	for rows.Next() {
		var doc models.SupportingDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.ClaimID,
			&doc.FileName,
			&doc.FilePath,
			&doc.FileSize,
			&doc.ContentType,
			&doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning supporting document: %w", err)
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// GetAllByLecturer retrieves a lecturer's claims, newest first, with pagination.
func (r *ClaimRepository) GetAllByLecturer(ctx context.Context, lecturerID int64, page, pageSize int) ([]models.Claim, int64, error) {
	query := squirrel.Select(claimColumns()...).
		From("claims").
		Where("lecturer_id = ?", lecturerID).
		OrderBy("submitted_at DESC NULLS LAST", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryClaims(ctx, query, page, pageSize)
}

// GetAllByStatus retrieves claims in any of the given statuses, oldest
// submission first, with pagination.
func (r *ClaimRepository) GetAllByStatus(ctx context.Context, statuses []models.ClaimStatus, page, pageSize int) ([]models.Claim, int64, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query := squirrel.Select(claimColumns()...).
		From("claims").
		Where(squirrel.Eq{"status": values}).
		OrderBy("submitted_at ASC NULLS LAST", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryClaims(ctx, query, page, pageSize)
}

func claimColumns() []string {
	return []string{
		"id", "lecturer_id", "month", "status", "total_hours", "total_amount",
		"submitted_at", "approved_by", "approved_at",
		"rejected_by", "rejected_at", "rejection_comment",
	}
}

func (r *ClaimRepository) queryClaims(ctx context.Context, query squirrel.SelectBuilder, page, pageSize int) ([]models.Claim, int64, error) {
	offset := (page - 1) * pageSize
	query = query.Column("COUNT(*) OVER()").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var claims []models.Claim
	var total int64

	for rows.Next() {
		var claim models.Claim
		err := rows.Scan(
			&claim.ID,
			&claim.LecturerID,
			&claim.Month,
			&claim.Status,
			&claim.TotalHours,
			&claim.TotalAmount,
			&claim.SubmittedAt,
			&claim.ApprovedBy,
			&claim.ApprovedAt,
			&claim.RejectedBy,
			&claim.RejectedAt,
			&claim.RejectionComment,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning claim: %w", err)
		}
		claims = append(claims, claim)
	}

	return claims, total, rows.Err()
}

// SubmitDraft finalizes a draft claim: it replaces the lines, stores the
// recomputed totals and flips Draft to Submitted. The update only applies
// while the claim is still a draft.
func (r *ClaimRepository) SubmitDraft(ctx context.Context, claim *models.Claim) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE claims
			SET month = $2, status = $3, total_hours = $4, total_amount = $5, submitted_at = $6
			WHERE id = $1 AND status = $7
		`

		result, err := tx.Exec(ctx, query,
			claim.ID,
			claim.Month,
			claim.Status,
			claim.TotalHours,
			claim.TotalAmount,
			claim.SubmittedAt,
			models.StatusDraft,
		)
		if err != nil {
			return fmt.Errorf("error submitting draft: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrInvalidTransition
		}

		if _, err := tx.Exec(ctx, `DELETE FROM claim_lines WHERE claim_id = $1`, claim.ID); err != nil {
			return fmt.Errorf("error clearing draft lines: %w", err)
		}

		return insertLines(ctx, tx, claim)
	})
}

// UpdateStatus persists a workflow transition. The update only applies when
// the stored status still equals the expected source status, so concurrent
// approvals cannot both win.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, claim *models.Claim, expected models.ClaimStatus) error {
	query := `
		UPDATE claims
		SET status = $3, approved_by = $4, approved_at = $5,
		    rejected_by = $6, rejected_at = $7, rejection_comment = $8
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query,
		claim.ID,
		expected,
		claim.Status,
		claim.ApprovedBy,
		claim.ApprovedAt,
		claim.RejectedBy,
		claim.RejectedAt,
		claim.RejectionComment,
	)
	if err != nil {
		return fmt.Errorf("error updating claim status: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Another reviewer moved the claim first.
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// AddDocuments appends supporting documents to an existing claim.
func (r *ClaimRepository) AddDocuments(ctx context.Context, claimID int64, documents []models.SupportingDocument) error {
	query := `
		INSERT INTO supporting_documents (claim_id, file_name, file_path, file_size, content_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`

	for i := range documents {
		doc := &documents[i]
		doc.ClaimID = claimID
		err := r.db.QueryRow(ctx, query,
			doc.ClaimID,
			doc.FileName,
			doc.FilePath,
			doc.FileSize,
			doc.ContentType,
		).Scan(&doc.ID, &doc.UploadedAt)
		if err != nil {
			return fmt.Errorf("error creating supporting document: %w", err)
		}
	}

	return nil
}

// GetStats aggregates claim counters for the dashboard.
func (r *ClaimRepository) GetStats(ctx context.Context) (*ClaimStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('SUBMITTED', 'VERIFIED', 'APPROVED')),
		       COUNT(*) FILTER (WHERE status = 'PROCESSED'),
		       COUNT(*) FILTER (WHERE status = 'REJECTED'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status = 'PROCESSED'), 0)
		FROM claims
	`

	var stats ClaimStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalClaims,
		&stats.PendingClaims,
		&stats.ProcessedClaims,
		&stats.RejectedClaims,
		&stats.ProcessedTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating claim stats: %w", err)
	}

	return &stats, nil
}
