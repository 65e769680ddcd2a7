package services

import (
	"context"
	"time"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/auth"
	"github.com/naledi/cmcs/internal/pkg/logger"
)

// AuthService handles authentication
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.IUserRepository, tokenRepo repositories.ITokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login checks the credentials and issues a token pair. A bad username and
// a bad password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		logger.Warn().Str("username", req.Username).Msg("Login attempt for unknown username")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("username", req.Username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair. The presented
// token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, apperrors.ErrTokenInvalid
	}
	if stored.ExpiryDate.Before(time.Now()) {
		_ = s.tokenRepo.Revoke(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Msg("Refresh token rotated")
	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Create(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(expiresIn),
		User:         dto.ToUserResponse(user),
	}, nil
}

// GetProfile retrieves the authenticated user's account.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
