package services

import (
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/auth"
	"github.com/naledi/cmcs/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	ClaimService    *ClaimService
	LecturerService *LecturerService
	UserService     *UserService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	return &Services{
		AuthService:     NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		ClaimService:    NewClaimService(repos.ClaimRepository, repos.LecturerRepository, repos.UserRepository, storage),
		LecturerService: NewLecturerService(repos.LecturerRepository),
		UserService:     NewUserService(repos.UserRepository),
	}
}
