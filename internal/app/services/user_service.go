package services

import (
	"context"
	"strings"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/auth"
	"github.com/naledi/cmcs/internal/pkg/logger"
	"github.com/naledi/cmcs/internal/pkg/validation"
)

// UserService handles account administration
type UserService struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser registers a new account.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "unknown role")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "email format is invalid")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "password is too short")
	}

	if taken, err := s.userRepo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.ErrUsernameExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Username: username,
		Password: hashed,
		Role:     req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User account created")
	return user, nil
}

// GetUser retrieves an account by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetAllUsers lists every account.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateUser updates an account's profile fields.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "unknown role")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError(apperrors.RuleInvalidLine, "email format is invalid")
	}
	if email != user.Email {
		if taken, err := s.userRepo.EmailExists(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = email
	user.Role = req.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("user_id", id).Msg("User account deleted")
	return nil
}

// ResetPassword replaces an account's password. When newPassword is empty a
// temporary password is generated and returned so HR can hand it to the user;
// otherwise the returned string is empty.
func (s *UserService) ResetPassword(ctx context.Context, id int64, newPassword string) (string, error) {
	temporary := ""
	if newPassword == "" {
		generated, err := auth.GenerateTemporaryPassword()
		if err != nil {
			return "", err
		}
		newPassword = generated
		temporary = generated
	} else if len(newPassword) < validation.PasswordMinLength {
		return "", apperrors.NewValidationError(apperrors.RuleInvalidLine, "password is too short")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hashed); err != nil {
		return "", err
	}

	logger.Info().Int64("user_id", id).Msg("Password reset")
	return temporary, nil
}
