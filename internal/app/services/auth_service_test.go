package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-value-0123456789abcdef",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "cmcs-test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService), userRepo, tokenRepo
}

func seedAccount(t *testing.T, repo *fakeUserRepo, username, password string, role models.RoleType) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		FullName: "Kholofelo Mashaba",
		Email:    username + "@cmcs.local",
		Username: username,
		Password: hashed,
		Role:     role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLoginIssuesTokenPair(t *testing.T) {
	service, repo, tokenRepo := newAuthFixture(t)
	user := seedAccount(t, repo, "kholo.hr", "Password@1", models.RoleHR)

	resp, err := service.Login(context.Background(), dto.LoginRequest{Username: "kholo.hr", Password: "Password@1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, models.RoleHR, resp.User.Role)

	stored, err := tokenRepo.GetByValue(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.True(t, stored.ExpiryDate.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, repo, _ := newAuthFixture(t)
	seedAccount(t, repo, "kholo.hr", "Password@1", models.RoleHR)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "Password@1"},
		{"wrong password", "kholo.hr", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), dto.LoginRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	service, repo, _ := newAuthFixture(t)
	user := seedAccount(t, repo, "kholo.hr", "Password@1", models.RoleHR)

	first, err := service.Login(context.Background(), dto.LoginRequest{Username: "kholo.hr", Password: "Password@1"})
	require.NoError(t, err)

	second, err := service.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, user.ID, second.User.ID)

	// The spent token cannot be replayed.
	_, err = service.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	// The rotated token still works.
	_, err = service.Refresh(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsUnknownOrExpiredToken(t *testing.T) {
	service, repo, tokenRepo := newAuthFixture(t)
	user := seedAccount(t, repo, "kholo.hr", "Password@1", models.RoleHR)

	_, err := service.Refresh(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	expired := "expired-token"
	require.NoError(t, tokenRepo.Create(context.Background(), expired, user.ID, time.Now().Add(-time.Hour)))

	_, err = service.Refresh(context.Background(), expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	// An expired token is revoked on sight.
	stored, err := tokenRepo.GetByValue(context.Background(), expired)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
}

func TestGetProfile(t *testing.T) {
	service, repo, _ := newAuthFixture(t)
	user := seedAccount(t, repo, "tumi.lecturer", "Password@1", models.RoleLecturer)

	got, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = service.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
