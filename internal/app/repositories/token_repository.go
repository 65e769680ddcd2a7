package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/dberrors"
)

// RefreshToken is one stored refresh token.
type RefreshToken struct {
	Token      string
	UserID     int64
	ExpiryDate time.Time
	Revoked    bool
}

// ITokenRepository defines the interface for refresh token database operations
type ITokenRepository interface {
	Create(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetByValue(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a freshly issued refresh token.
func (r *TokenRepository) Create(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	query := `
		INSERT INTO refresh_tokens (token, user_id, expiry_date)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, token, userID, expiryDate)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_pkey") {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error storing refresh token: %w", err)
	}

	return nil
}

// GetByValue retrieves a refresh token by its value.
func (r *TokenRepository) GetByValue(ctx context.Context, token string) (*RefreshToken, error) {
	query := `
		SELECT token, user_id, expiry_date, is_revoked
		FROM refresh_tokens
		WHERE token = $1
	`

	var stored RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&stored.Token,
		&stored.UserID,
		&stored.ExpiryDate,
		&stored.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	return &stored, nil
}

// Revoke marks a refresh token as spent. Revoking an already revoked or
// unknown token fails, so a replayed token is always rejected.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE refresh_tokens
		SET is_revoked = TRUE
		WHERE token = $1 AND NOT is_revoked
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTokenInvalid
	}

	return nil
}
