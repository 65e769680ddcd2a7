package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appModels "github.com/naledi/cmcs/internal/app/models"
	appRepos "github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
	"github.com/naledi/cmcs/internal/pkg/auth"
)

// CreateDefaultData creates the default accounts and lecturers if they
// don't exist yet so a fresh install is immediately usable.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	lecturerRepo := appRepos.NewLecturerRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default accounts and lecturers...")
	var finalErr error

	defaultUsers := []struct {
		fullName string
		email    string
		username string
		password string
		role     appModels.RoleType
	}{
		{"Kholofelo Mashaba", "kholo@cmcs.local", "kholo.hr", "Password@1", appModels.RoleHR},
		{"Siyanda Dlamini", "siya@cmcs.local", "siya.coord", "Password@1", appModels.RoleProgrammeCoordinator},
		{"Lerato Mokoena", "lerato@cmcs.local", "lerato.manager", "Password@1", appModels.RoleAcademicManager},
		{"Tumi Nkosi", "tumi.user@cmcs.local", "tumi.lecturer", "Password@1", appModels.RoleLecturer},
	}

	for _, u := range defaultUsers {
		hashed, err := auth.HashPassword(u.password)
		if err != nil {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error hashing default password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			FullName: u.fullName,
			Email:    u.email,
			Username: u.username,
			Password: hashed,
			Role:     u.role,
		}
		err = userRepo.Create(ctx, user)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) && !errors.Is(err, apperrors.ErrUsernameExists) {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	defaultLecturers := []struct {
		fullName string
		email    string
		rate     int64
	}{
		{"Dr. Tumi Nkosi", "tumi@cmcs.local", 500},
		{"Mrs. Kgosi Sithole", "kgosi@cmcs.local", 400},
	}

	for _, l := range defaultLecturers {
		lecturer := &appModels.Lecturer{
			FullName:   l.fullName,
			Email:      l.email,
			HourlyRate: decimal.NewFromInt(l.rate),
		}
		err := lecturerRepo.Create(ctx, lecturer)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", l.email).Msg("Error creating default lecturer")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
