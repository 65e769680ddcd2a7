package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/auth"
)

func createUserRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		FullName: "Siyanda Dlamini",
		Email:    "siya@cmcs.local",
		Username: "siya.coord",
		Password: "Password@1",
		Role:     models.RoleProgrammeCoordinator,
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)
	assert.NotEqual(t, "Password@1", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "Password@1"))
	assert.Equal(t, "siya@cmcs.local", user.Email)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	_, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)

	dupEmail := createUserRequest()
	dupEmail.Username = "someone.else"
	_, err = service.CreateUser(context.Background(), dupEmail)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	dupUsername := createUserRequest()
	dupUsername.Email = "other@cmcs.local"
	_, err = service.CreateUser(context.Background(), dupUsername)
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestCreateUserValidatesInput(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	tests := []struct {
		name   string
		mutate func(*dto.CreateUserRequest)
	}{
		{"unknown role", func(r *dto.CreateUserRequest) { r.Role = "SUPERUSER" }},
		{"bad email", func(r *dto.CreateUserRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *dto.CreateUserRequest) { r.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createUserRequest()
			tt.mutate(&req)
			_, err := service.CreateUser(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestUpdateUserChecksEmailOwnership(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	first, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)

	other := createUserRequest()
	other.Email = "lerato@cmcs.local"
	other.Username = "lerato.manager"
	_, err = service.CreateUser(context.Background(), other)
	require.NoError(t, err)

	// Keeping your own email is fine.
	updated, err := service.UpdateUser(context.Background(), first.ID, dto.UpdateUserRequest{
		FullName: "Siyanda D.",
		Email:    first.Email,
		Role:     models.RoleAcademicManager,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAcademicManager, updated.Role)

	// Taking someone else's is not.
	_, err = service.UpdateUser(context.Background(), first.ID, dto.UpdateUserRequest{
		FullName: "Siyanda D.",
		Email:    "lerato@cmcs.local",
		Role:     models.RoleAcademicManager,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)

	temporary, err := service.ResetPassword(context.Background(), user.ID, "Password@2")
	require.NoError(t, err)
	assert.Empty(t, temporary)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "Password@2"))

	_, err = service.ResetPassword(context.Background(), user.ID, "short")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = service.ResetPassword(context.Background(), 999, "Password@2")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestResetPasswordGeneratesTemporary(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)

	temporary, err := service.ResetPassword(context.Background(), user.ID, "")
	require.NoError(t, err)
	assert.Len(t, temporary, auth.TemporaryPasswordLength)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, temporary))
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), createUserRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(context.Background(), user.ID))
	assert.ErrorIs(t, service.DeleteUser(context.Background(), user.ID), apperrors.ErrUserNotFound)
}
